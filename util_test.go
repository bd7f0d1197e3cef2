package huffman

import (
	"math/rand"
)

const (
	randSeed   = 0x5a025ca11825a5e7
	iterations = 25
)

// randomInput returns n bytes drawn from an alphabet of the given size, with
// a skewed distribution so that code lengths vary.
func randomInput(rng *rand.Rand, n int, alphabet int) []byte {
	out := make([]byte, n)
	for i := range out {
		x := rng.Intn(alphabet)
		y := rng.Intn(alphabet)
		if y < x {
			x = y
		}
		out[i] = byte(x)
	}
	return out
}
