package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// FrequencyTable holds the number of occurrences of each Symbol in an input.
//
// The zero value is an empty table, ready to use.
type FrequencyTable struct {
	counts [NumSymbols]uint64
	total  uint64
	size   int
}

// CountFrequencies tallies every Symbol in input.
func CountFrequencies(input []byte) FrequencyTable {
	var ft FrequencyTable
	for _, b := range input {
		if ft.counts[b] == 0 {
			ft.size++
		}
		ft.counts[b]++
	}
	ft.total = uint64(len(input))
	return ft
}

// Add records n more occurrences of symbol.
func (ft *FrequencyTable) Add(symbol Symbol, n uint64) error {
	if n == 0 {
		return nil
	}
	total, overflow := addUint64(ft.total, n)
	if overflow {
		return fmt.Errorf("%w: adding %d to symbol 0x%02x", ErrFrequencyOverflow, n, byte(symbol))
	}
	if ft.counts[symbol] == 0 {
		ft.size++
	}
	ft.counts[symbol] += n
	ft.total = total
	return nil
}

// Count returns the number of occurrences of symbol.
func (ft FrequencyTable) Count(symbol Symbol) uint64 {
	return ft.counts[symbol]
}

// Len returns the number of distinct symbols with a non-zero count.
func (ft FrequencyTable) Len() int {
	return ft.size
}

// Total returns the sum of all counts, i.e. the input length.
func (ft FrequencyTable) Total() uint64 {
	return ft.total
}

// Symbols returns the symbols with a non-zero count, in ascending order.
func (ft FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, ft.size)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if ft.counts[symbol] != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the FrequencyTable to
// the given writer.
func (ft FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", ft.size)
	fmt.Fprintf(&buf, "\tTotal() = %d\n", ft.total)
	for _, symbol := range ft.Symbols() {
		fmt.Fprintf(&buf, "\tCount(%d) = %d\n", symbol, ft.counts[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
