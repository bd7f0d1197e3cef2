package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// CodeBook maps each Symbol of a Tree's alphabet to its codeword, and each
// codeword back to its Symbol.  A CodeBook is immutable once built.
type CodeBook struct {
	codes   [NumSymbols]Code
	inverse map[Code]Symbol
	minSize byte
	maxSize byte
}

// NewCodeBook derives the CodeBook for the given Tree.  Descending to a left
// child appends a 0 bit and descending to a right child appends a 1 bit.  A
// Tree with a single leaf assigns the codeword "0" to its only Symbol.
//
func NewCodeBook(t *Tree) *CodeBook {
	cb := &CodeBook{
		inverse: make(map[Code]Symbol, t.NumLeaves()),
	}
	if t.IsEmpty() {
		return cb
	}

	root := t.Node(t.Root())
	if root.IsLeaf() {
		cb.record(root.Symbol, MakeCode(1, 0))
		return cb
	}

	// Walk the tree with an explicit stack, so that a badly skewed tree
	// cannot exhaust the goroutine stack.  Only internal nodes are ever
	// pushed; leaves are recorded directly.
	//
	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		index int
		path  Code
		x     byte
	}

	stack := make([]stackItem, 0, log2uint(uint(t.NumLeaves()))+1)

	processChild := func(index int, path Code) {
		n := t.Node(index)
		if n.IsLeaf() {
			cb.record(n.Symbol, path)
			return
		}
		stack = append(stack, stackItem{index: index, path: path})
	}

	stack = append(stack, stackItem{index: t.Root()})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		n := t.Node(top.index)
		x := top.x
		top.x++
		switch x {
		case 0:
			processChild(n.Left, top.path.Append(0))
		case 1:
			processChild(n.Right, top.path.Append(1))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}

	assert.Assertf(len(cb.inverse) == t.NumLeaves(), "recorded %d codewords for %d leaves", len(cb.inverse), t.NumLeaves())
	return cb
}

func (cb *CodeBook) record(symbol Symbol, hc Code) {
	assert.Assertf(hc.Size != 0, "empty codeword for symbol %d", symbol)
	assert.Assertf(cb.codes[symbol].Size == 0, "symbol %d recorded twice", symbol)
	cb.codes[symbol] = hc
	cb.inverse[hc] = symbol
	if len(cb.inverse) == 1 {
		cb.minSize = hc.Size
		cb.maxSize = hc.Size
	} else if cb.minSize > hc.Size {
		cb.minSize = hc.Size
	} else if cb.maxSize < hc.Size {
		cb.maxSize = hc.Size
	}
}

// Code returns the codeword for symbol.  The second result is false if
// symbol is not in the alphabet.
func (cb *CodeBook) Code(symbol Symbol) (Code, bool) {
	hc := cb.codes[symbol]
	return hc, hc.Size != 0
}

// Lookup returns the Symbol whose codeword is exactly hc.  The second result
// is false if no Symbol has that codeword.
func (cb *CodeBook) Lookup(hc Code) (Symbol, bool) {
	symbol, found := cb.inverse[hc]
	return symbol, found
}

// Len returns the number of symbols in the alphabet.
func (cb *CodeBook) Len() int {
	return len(cb.inverse)
}

// Symbols returns the symbols in the alphabet, in ascending order.
func (cb *CodeBook) Symbols() []Symbol {
	out := make([]Symbol, 0, len(cb.inverse))
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if cb.codes[symbol].Size != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// MinSize is the bit length of the shortest codeword.
func (cb *CodeBook) MinSize() byte {
	return cb.minSize
}

// MaxSize is the bit length of the longest codeword.
func (cb *CodeBook) MaxSize() byte {
	return cb.maxSize
}

// EncodedSize returns the number of bits needed to encode an input with the
// given frequencies.  Symbols with no codeword are ignored.
func (cb *CodeBook) EncodedSize(ft FrequencyTable) uint64 {
	var sum uint64
	for _, symbol := range ft.Symbols() {
		sum += ft.Count(symbol) * uint64(cb.codes[symbol].Size)
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the CodeBook to the
// given writer, in ascending codeword order.
func (cb *CodeBook) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeBook{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", cb.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", cb.maxSize)
	keys := make(byCode, 0, len(cb.inverse))
	for hc := range cb.inverse {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		fmt.Fprintf(&buf, "\tLookup(%s) = %d\n", hc, cb.inverse[hc])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	as, ab := a.Size, a.Bits
	bs, bb := b.Size, b.Bits
	if as != bs {
		return as < bs
	}
	return ab < bb
}

var _ sort.Interface = byCode(nil)

// }}}
