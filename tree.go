package huffman

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// NoNode is the index used for a missing child or an empty tree's root.
const NoNode = -1

// Node is one node of a Tree.  A leaf has Left == Right == NoNode and holds a
// Symbol; an internal node has exactly two children and its Weight is the
// sum of theirs.
type Node struct {
	Weight uint64
	Left   int
	Right  int
	Symbol Symbol
}

// IsLeaf returns true iff this Node has no children.
func (n Node) IsLeaf() bool {
	return n.Left == NoNode
}

// Tree is a Huffman code tree.  Nodes are stored in an arena: the leaves
// come first, in ascending symbol order, followed by internal nodes in the
// order they were merged.  A Tree is immutable once built.
type Tree struct {
	nodes  []Node
	root   int
	leaves int
	depth  int
}

// NewTree builds the Huffman code tree for the given frequencies.  An empty
// FrequencyTable yields an empty Tree.
//
// The tree is built by repeatedly popping the two lightest nodes a and b
// from a min-heap and pushing a new node with left child a and right child
// b.  See the package documentation for the tie-break rule.
//
func NewTree(ft FrequencyTable) (*Tree, error) {
	numLeaves := ft.Len()
	t := &Tree{
		nodes:  make([]Node, 0, 2*numLeaves),
		root:   NoNode,
		leaves: numLeaves,
	}
	if numLeaves == 0 {
		return t, nil
	}

	// Step 1: one leaf per symbol, and a minheap over them.  Each heap entry
	// carries a sequence number, which is also its arena index: leaves are
	// numbered in ascending symbol order and merged nodes after them.

	heights := make([]int, 0, 2*numLeaves)
	h := weightHeap{list: make([]weightAndIndex, 0, numLeaves)}
	for _, symbol := range ft.Symbols() {
		index := len(t.nodes)
		weight := ft.Count(symbol)
		t.nodes = append(t.nodes, Node{Weight: weight, Left: NoNode, Right: NoNode, Symbol: symbol})
		heights = append(heights, 0)
		h.list = append(h.list, weightAndIndex{weight, index})
	}
	h.Init()

	// Step 2: merge the two lightest nodes until only the root remains.

	for h.Len() > 1 {
		a := heap.Pop(&h).(weightAndIndex)
		b := heap.Pop(&h).(weightAndIndex)

		weight, overflow := addUint64(a.weight, b.weight)
		assert.Assertf(!overflow, "weight overflow merging nodes %d and %d", a.index, b.index)

		height := heights[a.index]
		if heights[b.index] > height {
			height = heights[b.index]
		}
		height++
		if height > MaxCodeSize {
			return nil, fmt.Errorf("%w: tree depth %d > %d", ErrCodeTooLong, height, MaxCodeSize)
		}

		index := len(t.nodes)
		t.nodes = append(t.nodes, Node{Weight: weight, Left: a.index, Right: b.index})
		heights = append(heights, height)
		heap.Push(&h, weightAndIndex{weight, index})
	}

	root := heap.Pop(&h).(weightAndIndex)
	assert.Assertf(root.weight == ft.Total(), "root weight %d != total %d", root.weight, ft.Total())

	t.root = root.index
	t.depth = heights[root.index]
	if t.depth == 0 {
		// A lone leaf still needs a one-bit codeword.
		t.depth = 1
	}
	log.Debugf("built tree: %d leaves, %d nodes, depth %d, weight %d", numLeaves, len(t.nodes), t.depth, root.weight)
	return t, nil
}

// Root returns the arena index of the root node, or NoNode for an empty
// tree.
func (t *Tree) Root() int {
	return t.root
}

// Node returns the node at the given arena index.
func (t *Tree) Node(index int) Node {
	assert.Assertf(index >= 0 && index < len(t.nodes), "node index %d out of range [0, %d)", index, len(t.nodes))
	return t.nodes[index]
}

// Len returns the total number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves, i.e. the alphabet size.
func (t *Tree) NumLeaves() int {
	return t.leaves
}

// Weight returns the weight of the root, which is the total input length.
func (t *Tree) Weight() uint64 {
	if t.root == NoNode {
		return 0
	}
	return t.nodes[t.root].Weight
}

// Depth returns the length of the longest codeword.
func (t *Tree) Depth() int {
	return t.depth
}

// IsEmpty returns true iff the tree has no nodes.
func (t *Tree) IsEmpty() bool {
	return t.root == NoNode
}

// Dump writes a programmer-readable debugging dump of the Tree to the given
// writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tRoot() = %d\n", t.root)
	fmt.Fprintf(&buf, "\tDepth() = %d\n", t.depth)
	for index, n := range t.nodes {
		if n.IsLeaf() {
			fmt.Fprintf(&buf, "\tNode(%d) = leaf{%d, %d}\n", index, n.Symbol, n.Weight)
		} else {
			fmt.Fprintf(&buf, "\tNode(%d) = {%d, %d, %d}\n", index, n.Weight, n.Left, n.Right)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type weightAndIndex + type weightHeap {{{

type weightAndIndex struct {
	weight uint64
	index  int
}

type weightHeap struct {
	list []weightAndIndex
}

func (h *weightHeap) Init() {
	heap.Init(h)
}

func (h *weightHeap) Len() int {
	return len(h.list)
}

func (h *weightHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *weightHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.index < b.index
}

func (h *weightHeap) Push(x interface{}) {
	h.list = append(h.list, x.(weightAndIndex))
}

func (h *weightHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*weightHeap)(nil)

// }}}
