package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dchest/skein"
)

// FingerprintSize is the length of a Codec fingerprint in bytes.
const FingerprintSize = 32

// Codec ties together the FrequencyTable, Tree and CodeBook derived from one
// input, and encodes or decodes with them.  A Codec is immutable and safe for
// concurrent use.
type Codec struct {
	opts        Options
	freq        FrequencyTable
	tree        *Tree
	codes       *CodeBook
	enc         Encoder
	dec         Decoder
	fingerprint [FingerprintSize]byte
}

// Build counts the frequencies of input and builds a Codec from them.
func Build(input []byte, opts Options) (*Codec, error) {
	return NewCodec(CountFrequencies(input), opts)
}

// NewCodec builds a Codec from the given frequencies.
func NewCodec(ft FrequencyTable, opts Options) (*Codec, error) {
	t, err := NewTree(ft)
	if err != nil {
		return nil, err
	}
	cb := NewCodeBook(t)
	c := &Codec{
		opts:  opts.normalize(),
		freq:  ft,
		tree:  t,
		codes: cb,
		enc:   NewEncoder(cb),
		dec:   NewDecoder(t),
	}
	c.fingerprint = fingerprint(cb)
	log.Debugf("built codec: %d symbols, code sizes %d .. %d, fingerprint %x", cb.Len(), cb.MinSize(), cb.MaxSize(), c.fingerprint[:8])
	return c, nil
}

// Options returns the Options this Codec was built with.
func (c *Codec) Options() Options {
	return c.opts
}

// Frequencies returns the FrequencyTable this Codec was built from.
func (c *Codec) Frequencies() FrequencyTable {
	return c.freq
}

// Tree returns the code tree.
func (c *Codec) Tree() *Tree {
	return c.tree
}

// CodeBook returns the code table.
func (c *Codec) CodeBook() *CodeBook {
	return c.codes
}

// Fingerprint returns a digest identifying this Codec's exact code
// assignment.  Two Codecs with equal fingerprints encode identically.
func (c *Codec) Fingerprint() [FingerprintSize]byte {
	return c.fingerprint
}

// Encode encodes input.  See Encoder.Encode.
func (c *Codec) Encode(input []byte) (Bitstream, error) {
	bs, err := c.enc.Encode(input)
	if err != nil {
		return Bitstream{}, err
	}
	log.Debugf("encoded: %v", c.Stats(len(input), bs))
	return bs, nil
}

// Decode decodes bs.  See Decoder.Decode.
func (c *Codec) Decode(bs Bitstream) ([]byte, error) {
	return c.dec.Decode(bs)
}

// Stats reports the sizes of an input of inputLen symbols and its encoding.
func (c *Codec) Stats(inputLen int, bs Bitstream) Stats {
	return MakeStats(uint64(inputLen), c.opts.BitsPerSymbol, uint64(bs.Len()))
}

// Dump writes a programmer-readable debugging dump of the Codec to the given
// writer.
func (c *Codec) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Codec{\n")
	fmt.Fprintf(&buf, "\tBitsPerSymbol = %d\n", c.opts.BitsPerSymbol)
	fmt.Fprintf(&buf, "\tFingerprint() = %x\n", c.fingerprint)
	buf.WriteString("}\n")
	if _, err := c.freq.Dump(&buf); err != nil {
		return 0, err
	}
	if _, err := c.tree.Dump(&buf); err != nil {
		return 0, err
	}
	if _, err := c.codes.Dump(&buf); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

func fingerprint(cb *CodeBook) [FingerprintSize]byte {
	h := skein.New(FingerprintSize, nil)

	var scratch [10]byte
	binary.LittleEndian.PutUint16(scratch[:2], uint16(cb.Len()))
	h.Write(scratch[:2])
	for _, symbol := range cb.Symbols() {
		hc, _ := cb.Code(symbol)
		scratch[0] = byte(symbol)
		scratch[1] = hc.Size
		binary.LittleEndian.PutUint64(scratch[2:], hc.Bits)
		h.Write(scratch[:])
	}

	var out [FingerprintSize]byte
	copy(out[:], h.Sum(nil))
	return out
}
