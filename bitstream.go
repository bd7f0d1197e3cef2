package huffman

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/icza/bitio"
)

// Bitstream is an ordered sequence of bits, packed 8 bits per byte with the
// first bit in the most significant position.  Bits past Len() in the final
// byte are zero.
type Bitstream struct {
	packed []byte
	n      int
}

// MakeBitstream wraps packed bytes holding exactly nbits bits.  The final
// byte's pad bits must be zero.
func MakeBitstream(packed []byte, nbits int) (Bitstream, error) {
	if nbits < 0 {
		return Bitstream{}, fmt.Errorf("huffman: negative bit length %d", nbits)
	}
	if expect := packedLen(nbits); len(packed) != expect {
		return Bitstream{}, fmt.Errorf("huffman: %d bits need %d bytes, got %d", nbits, expect, len(packed))
	}
	if pad := nbits % 8; pad != 0 {
		if mask := byte(0xff) >> uint(pad); packed[len(packed)-1]&mask != 0 {
			return Bitstream{}, fmt.Errorf("huffman: non-zero pad bits in final byte 0x%02x", packed[len(packed)-1])
		}
	}
	return Bitstream{packed: packed, n: nbits}, nil
}

// ParseBitstream constructs a Bitstream from a string of '0' and '1'
// characters.
func ParseBitstream(str string) (Bitstream, error) {
	var buf bytes.Buffer
	buf.Grow(packedLen(len(str)))
	w := bitio.NewWriter(&buf)
	for i := 0; i < len(str); i++ {
		var bit bool
		switch str[i] {
		case '0':
		case '1':
			bit = true
		default:
			return Bitstream{}, fmt.Errorf("huffman: invalid bit %q at index %d", str[i], i)
		}
		if err := w.WriteBool(bit); err != nil {
			return Bitstream{}, err
		}
	}
	if err := w.Close(); err != nil {
		return Bitstream{}, err
	}
	return Bitstream{packed: buf.Bytes(), n: len(str)}, nil
}

// Len returns the number of bits.
func (bs Bitstream) Len() int {
	return bs.n
}

// Bytes returns the packed bits.  The caller must not modify the result.
func (bs Bitstream) Bytes() []byte {
	return bs.packed
}

// Bit returns the i'th bit.
func (bs Bitstream) Bit(i int) uint {
	return uint(bs.packed[i/8]>>(7-uint(i%8))) & 1
}

// Equal returns true iff both Bitstreams hold the same bits.
func (bs Bitstream) Equal(other Bitstream) bool {
	return bs.n == other.n && bytes.Equal(bs.packed, other.packed)
}

// String returns the bits as '0' and '1' characters.
func (bs Bitstream) String() string {
	var sb strings.Builder
	sb.Grow(bs.n)
	for i := 0; i < bs.n; i++ {
		sb.WriteByte(byte('0' + bs.Bit(i)))
	}
	return sb.String()
}

var _ fmt.Stringer = Bitstream{}

func packedLen(nbits int) int {
	return (nbits + 7) / 8
}
