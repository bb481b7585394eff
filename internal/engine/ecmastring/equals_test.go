package ecmastring

import (
	"testing"
)

func TestEquals(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		a, b string
		want bool
	}{
		{"", "", true},
		{"ab", "ab", true},
		{"ab", "abc", false},
		{"ab", "ac", false},
		{"整数integer", "整数integer", true},
		{"整数integer", "整数integex", false},
	}
	for _, tt := range tests {
		a := env.str(t, tt.a)
		b := env.asTree(t, u16(tt.b))
		if got := Equals(a, b); got != tt.want {
			t.Errorf("Equals(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := EqualsUTF16(a, u16(tt.b)); got != tt.want {
			t.Errorf("EqualsUTF16(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEqualsUsesCachedHashes(t *testing.T) {
	env := newTestEnv(t)
	a := env.str(t, "abc")
	b := env.str(t, "abd")
	a.Hash()
	b.Hash()
	if Equals(a, b) {
		t.Error("different strings reported equal")
	}
}

func TestCompareCodeUnits(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "a", -1},
		{"abc", "abd", -1},
		{"abd", "abc", 1},
		{"ab", "abc", -1},
		{"B", "a", -1},
		{"é", "z", 1},
		{"z", "整", -1},
		{"\U0001F600", "￿", -1},
	}
	for _, tt := range tests {
		a := env.asTree(t, u16(tt.a))
		b := env.asSliced(t, u16(tt.b))
		if got := CompareCodeUnits(a, b); got != tt.want {
			t.Errorf("CompareCodeUnits(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := CompareCodeUnits(b, a); got != -tt.want {
			t.Errorf("CompareCodeUnits(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
		}
	}
}

func TestToArrayIndex(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"0", 0, true},
		{"7", 7, true},
		{"123", 123, true},
		{"4294967294", 4294967294, true},
		{"4294967295", 0, false},
		{"01", 0, false},
		{"", 0, false},
		{"-1", 0, false},
		{"1.5", 0, false},
		{"12345678901", 0, false},
		{"١٢", 0, false},
	}
	for _, tt := range tests {
		got, ok := env.str(t, tt.in).ToArrayIndex()
		if got != tt.want || ok != tt.ok {
			t.Errorf("ToArrayIndex(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
