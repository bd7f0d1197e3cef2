package huffman

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSymbol     = errors.New("huffman: symbol has no codeword")
	ErrTruncatedStream   = errors.New("huffman: bitstream ends in the middle of a codeword")
	ErrInvalidCode       = errors.New("huffman: bitstream does not match the code tree")
	ErrCodeTooLong       = errors.New("huffman: codeword exceeds maximum size")
	ErrFrequencyOverflow = errors.New("huffman: total frequency overflows uint64")
)

// UnknownSymbolError is returned when encoding a Symbol that the CodeBook
// does not contain.  It matches ErrUnknownSymbol under errors.Is.
type UnknownSymbolError struct {
	Symbol Symbol
	Offset int
}

func (err *UnknownSymbolError) Error() string {
	return fmt.Sprintf("huffman: symbol 0x%02x at input offset %d has no codeword", byte(err.Symbol), err.Offset)
}

// Is reports whether target is ErrUnknownSymbol.
func (err *UnknownSymbolError) Is(target error) bool {
	return target == ErrUnknownSymbol
}

var _ error = (*UnknownSymbolError)(nil)
