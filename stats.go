package huffman

import (
	"fmt"
)

// Stats reports the outcome of an encode pass.
type Stats struct {
	// OriginalBits is the input size: symbols × bits per symbol.
	OriginalBits uint64

	// EncodedBits is the Bitstream length.
	EncodedBits uint64

	// Ratio is OriginalBits / EncodedBits, or 0 if EncodedBits is 0.
	Ratio float64
}

// MakeStats computes Stats for numSymbols input symbols of bitsPerSymbol
// bits each, encoded into encodedBits bits.
func MakeStats(numSymbols uint64, bitsPerSymbol uint, encodedBits uint64) Stats {
	s := Stats{
		OriginalBits: numSymbols * uint64(bitsPerSymbol),
		EncodedBits:  encodedBits,
	}
	if encodedBits != 0 {
		s.Ratio = float64(s.OriginalBits) / float64(encodedBits)
	}
	return s
}

// String returns a human-readable summary.
func (s Stats) String() string {
	return fmt.Sprintf("original %d bits, encoded %d bits, ratio %.4f", s.OriginalBits, s.EncodedBits, s.Ratio)
}

var _ fmt.Stringer = Stats{}
