package huffman

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// Decoder turns a Bitstream back into Symbols by walking a Tree: a 0 bit
// descends left, a 1 bit descends right, and reaching a leaf emits its
// Symbol and restarts at the root.  A Decoder holds no mutable state and may
// be used concurrently.
type Decoder struct {
	tree *Tree
}

// NewDecoder constructs a Decoder for the given Tree.
func NewDecoder(t *Tree) Decoder {
	return Decoder{tree: t}
}

// Decode decodes every bit of bs.
//
// If bs ends part way through a codeword, Decode returns an error wrapping
// ErrTruncatedStream.  If bs contains a bit sequence that is not a codeword,
// which can only happen for trees with fewer than two leaves, Decode returns
// an error wrapping ErrInvalidCode.  No partial output is returned on error.
//
func (d Decoder) Decode(bs Bitstream) ([]byte, error) {
	if bs.Len() == 0 {
		return []byte{}, nil
	}
	t := d.tree
	if t.IsEmpty() {
		return nil, fmt.Errorf("%w: %d bits for an empty alphabet", ErrInvalidCode, bs.Len())
	}

	out := make([]byte, 0, bs.Len()/t.Depth())
	r := bitio.NewReader(bytes.NewReader(bs.Bytes()))
	rootIndex := t.Root()
	root := t.Node(rootIndex)

	// A lone leaf has the codeword "0" and no children to descend into.
	if root.IsLeaf() {
		for pos := 0; pos < bs.Len(); pos++ {
			bit, err := r.ReadBool()
			if err != nil {
				return nil, fmt.Errorf("huffman: reading bit %d: %w", pos, err)
			}
			if bit {
				return nil, fmt.Errorf("%w: bit %d is 1 in a one-symbol code", ErrInvalidCode, pos)
			}
			out = append(out, byte(root.Symbol))
		}
		return out, nil
	}

	index := rootIndex
	for pos := 0; pos < bs.Len(); pos++ {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("huffman: reading bit %d: %w", pos, err)
		}
		n := t.Node(index)
		if bit {
			index = n.Right
		} else {
			index = n.Left
		}
		if n = t.Node(index); n.IsLeaf() {
			out = append(out, byte(n.Symbol))
			index = rootIndex
		}
	}
	if index != rootIndex {
		return nil, fmt.Errorf("%w: %d bits, %d symbols decoded", ErrTruncatedStream, bs.Len(), len(out))
	}
	return out, nil
}
