package huffman

import (
	"errors"
	"testing"
)

func TestParseCode(t *testing.T) {
	type testRow struct {
		input string
		size  byte
		bits  uint64
	}

	testData := [...]testRow{
		{input: "", size: 0, bits: 0x0},
		{input: "0", size: 1, bits: 0x0},
		{input: "1", size: 1, bits: 0x1},
		{input: "10", size: 2, bits: 0x2},
		{input: "1100", size: 4, bits: 0xc},
		{input: "0111", size: 4, bits: 0x7},
	}
	for _, row := range testData {
		t.Run(row.input, func(t *testing.T) {
			hc, err := ParseCode(row.input)
			if err != nil {
				t.Fatalf("ParseCode failed: %v", err)
			}
			if expect := MakeCode(row.size, row.bits); hc != expect {
				t.Errorf("wrong code:\n\texpect: %#v\n\tactual: %#v", expect, hc)
			}
			if actual := hc.Digits(); actual != row.input {
				t.Errorf("wrong digits:\n\texpect: %s\n\tactual: %s", row.input, actual)
			}
		})
	}
}

func TestParseCode_Errors(t *testing.T) {
	if _, err := ParseCode("01x"); err == nil {
		t.Errorf("expected error for invalid bit")
	}
	long := make([]byte, MaxCodeSize+1)
	for i := range long {
		long[i] = '1'
	}
	if _, err := ParseCode(string(long)); !errors.Is(err, ErrCodeTooLong) {
		t.Errorf("expected ErrCodeTooLong, got %v", err)
	}
}

func TestCode_String(t *testing.T) {
	if actual := MakeCode(0, 0).String(); actual != "\"\"" {
		t.Errorf("wrong output for empty code: %s", actual)
	}
	if actual := MakeCode(4, 0x5).String(); actual != "\"0101\"" {
		t.Errorf("wrong output: %s", actual)
	}
}

func TestCode_HasPrefix(t *testing.T) {
	type testRow struct {
		code   string
		prefix string
		expect bool
	}

	testData := [...]testRow{
		{"1100", "", true},
		{"1100", "1", true},
		{"1100", "11", true},
		{"1100", "1100", true},
		{"1100", "10", false},
		{"1100", "11000", false},
		{"0", "1", false},
	}
	for _, row := range testData {
		hc, _ := ParseCode(row.code)
		prefix, _ := ParseCode(row.prefix)
		if actual := hc.HasPrefix(prefix); actual != row.expect {
			t.Errorf("%s.HasPrefix(%s): expected %v, got %v", hc, prefix, row.expect, actual)
		}
	}
}

func TestCode_Bit(t *testing.T) {
	hc, _ := ParseCode("1101")
	expect := []uint{1, 1, 0, 1}
	for i, bit := range expect {
		if actual := hc.Bit(i); actual != bit {
			t.Errorf("Bit(%d): expected %d, got %d", i, bit, actual)
		}
	}
}
