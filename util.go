package huffman

import (
	mathbits "math/bits"
)

func log2uint(x uint) int {
	if x == 0 {
		x = 1
	}
	return mathbits.Len(x)
}

func addUint64(a, b uint64) (sum uint64, overflow bool) {
	sum, carry := mathbits.Add64(a, b, 0)
	return sum, carry != 0
}
