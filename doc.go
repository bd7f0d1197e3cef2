// Package huffman implements static, two-pass Huffman coding of byte
// sequences.  The whole input is counted first, a prefix code is derived from
// the counts, and the input is then encoded into a packed bitstream which can
// be decoded by walking the same code tree.
//
// Construction is deterministic: nodes of equal weight are taken from the
// priority queue in insertion order, where leaves are inserted in ascending
// symbol order before any merged node, and merged nodes are numbered in the
// order they are created.  The first node popped becomes the left ("0")
// child and the second becomes the right ("1") child.
//
// See package container for an on-disk framing of the code and payload.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
