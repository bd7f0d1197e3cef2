package huffman

// Symbol represents one byte of input.
type Symbol byte

// NumSymbols is the size of the Symbol alphabet.
const NumSymbols = 256

// DefaultBitsPerSymbol is the width of one Symbol in the uncoded input.
const DefaultBitsPerSymbol = 8
