package huffman

import (
	"github.com/chronos-tachyon/assert"
)

// Options configures a Codec.
type Options struct {
	// BitsPerSymbol is the width of one uncoded Symbol, used only for
	// reporting the original size in Stats.  Zero selects
	// DefaultBitsPerSymbol.
	BitsPerSymbol uint
}

// DefaultOptions returns the Options used when none are given.
func DefaultOptions() Options {
	return Options{BitsPerSymbol: DefaultBitsPerSymbol}
}

func (opts Options) normalize() Options {
	if opts.BitsPerSymbol == 0 {
		opts.BitsPerSymbol = DefaultBitsPerSymbol
	}
	assert.Assertf(opts.BitsPerSymbol <= 64, "BitsPerSymbol %d > 64", opts.BitsPerSymbol)
	return opts
}
