// Package container frames a Huffman code and its encoded payload into a
// single byte stream, suitable for writing to durable storage.
//
// The format is:
//
//     magic    "HUFS"
//     version  1 byte (currently 1)
//     count    uint16, little-endian: number of distinct symbols
//     entries  count × (symbol byte, uvarint frequency), ascending by symbol
//     digest   32 bytes: huffman.Codec.Fingerprint() of the code
//     nbits    uvarint: payload length in bits
//     payload  (nbits+7)/8 bytes, first bit most significant, zero padded
//
// The code itself is not stored; the reader rebuilds it from the frequency
// entries and checks the rebuilt code against the stored digest.
package container

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/op/go-logging"

	huffman "github.com/chronos-tachyon/statichuff"
)

var log = logging.MustGetLogger("huffman/container")

// Magic begins every container.
const Magic = "HUFS"

// Version is the format version written by Write.
const Version = 1

var (
	ErrBadMagic           = errors.New("container: bad magic")
	ErrUnsupportedVersion = errors.New("container: unsupported version")
	ErrCorruptHeader      = errors.New("container: corrupt header")
	ErrCorruptPayload     = errors.New("container: corrupt payload")
	ErrMismatchedCodec    = errors.New("container: code does not match digest")
)

// Write writes c's frequencies, c's fingerprint, and bs to w.  bs must have
// been produced by c.
func Write(w io.Writer, c *huffman.Codec, bs huffman.Bitstream) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(Magic)
	bw.WriteByte(Version)

	ft := c.Frequencies()
	var scratch [binary.MaxVarintLen64]byte
	binary.LittleEndian.PutUint16(scratch[:2], uint16(ft.Len()))
	bw.Write(scratch[:2])
	for _, symbol := range ft.Symbols() {
		bw.WriteByte(byte(symbol))
		n := binary.PutUvarint(scratch[:], ft.Count(symbol))
		bw.Write(scratch[:n])
	}

	digest := c.Fingerprint()
	bw.Write(digest[:])

	n := binary.PutUvarint(scratch[:], uint64(bs.Len()))
	bw.Write(scratch[:n])
	bw.Write(bs.Bytes())

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("container: write: %w", err)
	}
	log.Debugf("wrote container: %d symbols, %d payload bits", ft.Len(), bs.Len())
	return nil
}

// Read reads a container from r, rebuilds its Codec with the given Options,
// and returns the Codec together with the payload.
func Read(r io.Reader, opts huffman.Options) (*huffman.Codec, huffman.Bitstream, error) {
	br := bufio.NewReader(r)
	ft, digest, err := readHeader(br)
	if err != nil {
		return nil, huffman.Bitstream{}, err
	}

	c, err := huffman.NewCodec(ft, opts)
	if err != nil {
		return nil, huffman.Bitstream{}, fmt.Errorf("%w: %w", ErrCorruptHeader, err)
	}
	if c.Fingerprint() != digest {
		return nil, huffman.Bitstream{}, ErrMismatchedCodec
	}

	bs, err := readPayload(br, c.CodeBook(), ft)
	if err != nil {
		return nil, huffman.Bitstream{}, err
	}
	return c, bs, nil
}

// DecodeWith reads a container from r and decodes its payload with c, which
// must be the Codec that produced it.  If the container was written by a
// different code, DecodeWith returns ErrMismatchedCodec.
func DecodeWith(r io.Reader, c *huffman.Codec) ([]byte, error) {
	br := bufio.NewReader(r)
	ft, digest, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if c.Fingerprint() != digest {
		return nil, ErrMismatchedCodec
	}
	bs, err := readPayload(br, c.CodeBook(), ft)
	if err != nil {
		return nil, err
	}
	return decode(c, bs, ft.Total())
}

// Compress builds a Codec for input, encodes input, and returns the framed
// container together with the encoding Stats.
func Compress(input []byte, opts huffman.Options) ([]byte, huffman.Stats, error) {
	c, err := huffman.Build(input, opts)
	if err != nil {
		return nil, huffman.Stats{}, err
	}
	bs, err := c.Encode(input)
	if err != nil {
		return nil, huffman.Stats{}, err
	}
	var buf bytes.Buffer
	if err := Write(&buf, c, bs); err != nil {
		return nil, huffman.Stats{}, err
	}
	return buf.Bytes(), c.Stats(len(input), bs), nil
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	c, bs, err := Read(bytes.NewReader(data), huffman.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return decode(c, bs, c.Frequencies().Total())
}

func decode(c *huffman.Codec, bs huffman.Bitstream, expect uint64) ([]byte, error) {
	out, err := c.Decode(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptPayload, err)
	}
	if uint64(len(out)) != expect {
		return nil, fmt.Errorf("%w: decoded %d symbols, header says %d", ErrCorruptPayload, len(out), expect)
	}
	return out, nil
}

func readHeader(br *bufio.Reader) (huffman.FrequencyTable, [huffman.FingerprintSize]byte, error) {
	var ft huffman.FrequencyTable
	var digest [huffman.FingerprintSize]byte

	var fixed [len(Magic) + 3]byte
	if _, err := io.ReadFull(br, fixed[:]); err != nil {
		return ft, digest, fmt.Errorf("container: read header: %w", unexpected(err))
	}
	if string(fixed[:len(Magic)]) != Magic {
		return ft, digest, ErrBadMagic
	}
	if version := fixed[len(Magic)]; version != Version {
		return ft, digest, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	count := int(binary.LittleEndian.Uint16(fixed[len(Magic)+1:]))
	if count > huffman.NumSymbols {
		return ft, digest, fmt.Errorf("%w: %d symbols", ErrCorruptHeader, count)
	}

	prev := -1
	for i := 0; i < count; i++ {
		b, err := br.ReadByte()
		if err != nil {
			return ft, digest, fmt.Errorf("container: read entry %d: %w", i, unexpected(err))
		}
		if int(b) <= prev {
			return ft, digest, fmt.Errorf("%w: symbol 0x%02x out of order", ErrCorruptHeader, b)
		}
		prev = int(b)
		freq, err := binary.ReadUvarint(br)
		if err != nil {
			return ft, digest, fmt.Errorf("container: read entry %d: %w", i, unexpected(err))
		}
		if freq == 0 {
			return ft, digest, fmt.Errorf("%w: zero frequency for symbol 0x%02x", ErrCorruptHeader, b)
		}
		if err := ft.Add(huffman.Symbol(b), freq); err != nil {
			return ft, digest, fmt.Errorf("%w: %w", ErrCorruptHeader, err)
		}
	}

	if _, err := io.ReadFull(br, digest[:]); err != nil {
		return ft, digest, fmt.Errorf("container: read digest: %w", unexpected(err))
	}
	return ft, digest, nil
}

func readPayload(br *bufio.Reader, cb *huffman.CodeBook, ft huffman.FrequencyTable) (huffman.Bitstream, error) {
	nbits, err := binary.ReadUvarint(br)
	if err != nil {
		return huffman.Bitstream{}, fmt.Errorf("container: read payload length: %w", unexpected(err))
	}
	if expect := cb.EncodedSize(ft); nbits != expect {
		return huffman.Bitstream{}, fmt.Errorf("%w: %d payload bits, code needs %d", ErrCorruptPayload, nbits, expect)
	}

	if nbits > math.MaxInt32*8 {
		return huffman.Bitstream{}, fmt.Errorf("%w: %d payload bits", ErrCorruptPayload, nbits)
	}

	// The length is untrusted, so let the buffer grow with the data actually
	// present instead of allocating it up front.
	nbytes := int64(nbits+7) / 8
	var payload bytes.Buffer
	if _, err := payload.ReadFrom(io.LimitReader(br, nbytes)); err != nil {
		return huffman.Bitstream{}, fmt.Errorf("container: read payload: %w", err)
	}
	if int64(payload.Len()) != nbytes {
		return huffman.Bitstream{}, fmt.Errorf("container: read payload: %w", io.ErrUnexpectedEOF)
	}
	bs, err := huffman.MakeBitstream(payload.Bytes(), int(nbits))
	if err != nil {
		return huffman.Bitstream{}, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	log.Debugf("read container: %d symbols, %d payload bits", cb.Len(), nbits)
	return bs, nil
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
