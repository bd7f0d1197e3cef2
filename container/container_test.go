package container

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	huffman "github.com/chronos-tachyon/statichuff"
)

func compress(t *testing.T, input string) []byte {
	t.Helper()
	data, _, err := Compress([]byte(input), huffman.Options{})
	require.NoError(t, err)
	return data
}

func TestCompress_Layout(t *testing.T) {
	data := compress(t, "aaaabbbcc")

	c, err := huffman.Build([]byte("aaaabbbcc"), huffman.Options{})
	require.NoError(t, err)
	digest := c.Fingerprint()

	var expect []byte
	expect = append(expect, "HUFS"...)
	expect = append(expect, Version, 3, 0)
	expect = append(expect, 'a', 4, 'b', 3, 'c', 2)
	expect = append(expect, digest[:]...)
	expect = append(expect, 14, 0x0f, 0xe8)
	require.Equal(t, expect, data)
}

func TestCompress_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(0x5a025ca11825a5e7))
	inputs := []string{
		"",
		"z",
		"zzzz",
		"aaaabbbcc",
		strings.Repeat("It was the best of times, it was the worst of times. ", 40),
	}
	for i := 0; i < 10; i++ {
		input := make([]byte, rng.Intn(4096))
		rng.Read(input)
		inputs = append(inputs, string(input))
	}

	for _, input := range inputs {
		data, stats, err := Compress([]byte(input), huffman.Options{})
		require.NoError(t, err)
		require.Equal(t, uint64(len(input))*8, stats.OriginalBits)

		out, err := Decompress(data)
		require.NoError(t, err)
		require.Equal(t, input, string(out))
	}
}

func TestCompress_Shrinks(t *testing.T) {
	input := strings.Repeat("It was the best of times, it was the worst of times. ", 40)
	data, stats, err := Compress([]byte(input), huffman.Options{})
	require.NoError(t, err)
	require.Less(t, len(data), len(input))
	require.Greater(t, stats.Ratio, 1.0)
}

func TestRead(t *testing.T) {
	data := compress(t, "aaaabbbcc")
	c, bs, err := Read(bytes.NewReader(data), huffman.Options{BitsPerSymbol: 7})
	require.NoError(t, err)
	require.Equal(t, "00001111111010", bs.String())
	require.Equal(t, uint(7), c.Options().BitsPerSymbol)
	require.Equal(t, uint64(9), c.Frequencies().Total())
}

func TestDecodeWith(t *testing.T) {
	data := compress(t, "aaaabbbcc")

	same, err := huffman.Build([]byte("abcabcaab"), huffman.Options{})
	require.NoError(t, err)
	out, err := DecodeWith(bytes.NewReader(data), same)
	require.NoError(t, err)
	require.Equal(t, "aaaabbbcc", string(out))

	other, err := huffman.Build([]byte("abbbccccc"), huffman.Options{})
	require.NoError(t, err)
	_, err = DecodeWith(bytes.NewReader(data), other)
	require.ErrorIs(t, err, ErrMismatchedCodec)
}

func TestDecompress_Errors(t *testing.T) {
	// Offsets within the "aaaabbbcc" container: 0..3 magic, 4 version,
	// 5..6 count, 7..12 entries, 13..44 digest, 45 nbits, 46..47 payload.
	type testRow struct {
		name   string
		mutate func(data []byte) []byte
		err    error
	}

	testData := [...]testRow{
		{
			name:   "bad-magic",
			mutate: func(data []byte) []byte { data[0] = 'X'; return data },
			err:    ErrBadMagic,
		},
		{
			name:   "bad-version",
			mutate: func(data []byte) []byte { data[4] = 9; return data },
			err:    ErrUnsupportedVersion,
		},
		{
			name:   "too-many-symbols",
			mutate: func(data []byte) []byte { data[5], data[6] = 0x01, 0x01; return data },
			err:    ErrCorruptHeader,
		},
		{
			name:   "unordered-symbols",
			mutate: func(data []byte) []byte { data[9] = 'a'; return data },
			err:    ErrCorruptHeader,
		},
		{
			name:   "zero-frequency",
			mutate: func(data []byte) []byte { data[8] = 0; return data },
			err:    ErrCorruptHeader,
		},
		{
			name:   "changed-frequency",
			mutate: func(data []byte) []byte { data[8] = 1; return data },
			err:    ErrMismatchedCodec,
		},
		{
			name:   "changed-digest",
			mutate: func(data []byte) []byte { data[20] ^= 0xff; return data },
			err:    ErrMismatchedCodec,
		},
		{
			name:   "wrong-bit-count",
			mutate: func(data []byte) []byte { data[45] = 13; return data },
			err:    ErrCorruptPayload,
		},
		{
			name:   "dirty-pad",
			mutate: func(data []byte) []byte { data[47] |= 0x01; return data },
			err:    ErrCorruptPayload,
		},
		{
			name:   "truncated-payload",
			mutate: func(data []byte) []byte { return data[:len(data)-1] },
			err:    io.ErrUnexpectedEOF,
		},
		{
			name:   "truncated-header",
			mutate: func(data []byte) []byte { return data[:20] },
			err:    io.ErrUnexpectedEOF,
		},
		{
			name:   "empty",
			mutate: func(data []byte) []byte { return nil },
			err:    io.ErrUnexpectedEOF,
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			data := row.mutate(compress(t, "aaaabbbcc"))
			out, err := Decompress(data)
			require.Nil(t, out)
			require.True(t, errors.Is(err, row.err), "expected %v, got %v", row.err, err)
		})
	}
}

func TestDecompress_CorruptBits(t *testing.T) {
	// Flipping the final codeword "10" to "11" keeps the length and symbol
	// count, so it decodes to "aaaabbbcb" without complaint.
	data := compress(t, "aaaabbbcc")
	data[len(data)-1] = 0xec
	out, err := Decompress(data)
	require.NoError(t, err)
	require.Equal(t, "aaaabbbcb", string(out))

	// Thirteen "0" codewords followed by a dangling "1".
	data = compress(t, "aaaabbbcc")
	data[len(data)-2], data[len(data)-1] = 0x00, 0x04
	_, err = Decompress(data)
	require.ErrorIs(t, err, ErrCorruptPayload)
	require.ErrorIs(t, err, huffman.ErrTruncatedStream)

	// Fourteen "0" codewords decode cleanly, but to the wrong length.
	data = compress(t, "aaaabbbcc")
	data[len(data)-2], data[len(data)-1] = 0x00, 0x00
	_, err = Decompress(data)
	require.ErrorIs(t, err, ErrCorruptPayload)
}
