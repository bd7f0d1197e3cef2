package huffman

import (
	"bytes"

	"github.com/icza/bitio"
)

// Encoder turns a sequence of Symbols into a Bitstream using a CodeBook.
// An Encoder holds no mutable state and may be used concurrently.
type Encoder struct {
	codes *CodeBook
}

// NewEncoder constructs an Encoder for the given CodeBook.
func NewEncoder(cb *CodeBook) Encoder {
	return Encoder{codes: cb}
}

// Encode concatenates the codeword of every Symbol in input, in order.  It
// returns an *UnknownSymbolError if input contains a Symbol that has no
// codeword; no partial output is returned in that case.
func (e Encoder) Encode(input []byte) (Bitstream, error) {
	var buf bytes.Buffer
	buf.Grow(len(input) * int(e.codes.MaxSize()) / 8)

	w := bitio.NewWriter(&buf)
	nbits, err := e.encodeTo(w, input)
	if err != nil {
		return Bitstream{}, err
	}
	if err := w.Close(); err != nil {
		return Bitstream{}, err
	}
	return Bitstream{packed: buf.Bytes(), n: nbits}, nil
}

func (e Encoder) encodeTo(w *bitio.Writer, input []byte) (int, error) {
	var nbits int
	for offset, b := range input {
		hc, found := e.codes.Code(Symbol(b))
		if !found {
			return 0, &UnknownSymbolError{Symbol: Symbol(b), Offset: offset}
		}
		if err := w.WriteBits(hc.Bits, hc.Size); err != nil {
			return 0, err
		}
		nbits += int(hc.Size)
	}
	return nbits, nil
}
