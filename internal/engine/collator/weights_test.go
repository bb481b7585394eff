package collator

import "testing"

func TestWeightTables(t *testing.T) {
	for c := 'a'; c <= 'z'; c++ {
		lower, upper := primaryWeights[c], primaryWeights[c-'a'+'A']
		if lower == 0 || lower != upper {
			t.Errorf("%c: primary lower=%d upper=%d", c, lower, upper)
		}
		if tertiaryWeights[c] >= tertiaryWeights[c-'a'+'A'] {
			t.Errorf("%c: lowercase does not sort before uppercase", c)
		}
		if c > 'a' && primaryWeights[c] <= primaryWeights[c-1] {
			t.Errorf("%c does not follow %c", c, c-1)
		}
	}
	for c := '1'; c <= '9'; c++ {
		if primaryWeights[c] != primaryWeights[c-1]+1 {
			t.Errorf("digit %c out of order", c)
		}
	}
	if primaryWeights['9'] >= primaryWeights['a'] {
		t.Error("digits do not sort before letters")
	}
	if primaryWeights[' '] >= primaryWeights['0'] || primaryWeights['$'] >= primaryWeights['0'] {
		t.Error("punctuation does not sort before digits")
	}
	for c := 0x80; c <= 0xFF; c++ {
		if primaryWeights[c] != 0 || tertiaryWeights[c] != 0 {
			t.Errorf("unit %#x has a weight", c)
		}
	}
	for _, c := range []byte{0x00, 0x08, 0x0E, 0x1F, 0x7F} {
		if primaryWeights[c] != 0 {
			t.Errorf("ignorable control %#x has a weight", c)
		}
	}
}

func TestPrimaryWeightsDistinct(t *testing.T) {
	seen := make(map[uint8]byte)
	for c := 0; c < 0x80; c++ {
		w := primaryWeights[c]
		if w == 0 || (c >= 'A' && c <= 'Z') {
			continue
		}
		if prev, ok := seen[w]; ok {
			t.Errorf("%q and %q share primary weight %d", prev, c, w)
		}
		seen[w] = byte(c)
	}
}

func TestPrimaryWeightWideUnits(t *testing.T) {
	for _, c := range []uint16{0x100, 0x301, 0x6574, 0xFFFF} {
		if primaryWeight(c) != 0 || isFastComparable(c) {
			t.Errorf("unit %#x reported fast-comparable", c)
		}
	}
}
