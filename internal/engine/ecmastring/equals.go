package ecmastring

import (
	"bytes"
	"slices"
)

// zipLeaves walks the pieces of a and b in lock-step over their common
// prefix, calling fn with equal-length views until fn returns false.
func zipLeaves(a, b *String, fn func(x, y FlatView) bool) {
	n := min(a.Len(), b.Len())
	if n == 0 {
		return
	}
	ia, ib := a.leaves(0, n), b.leaves(0, n)
	defer ia.release()
	defer ib.release()

	var x, y FlatView
	for {
		if x.length == 0 {
			if !ia.Next() {
				return
			}
			x = ia.View()
		}
		if y.length == 0 {
			if !ib.Next() {
				return
			}
			y = ib.View()
		}
		k := min(x.length, y.length)
		if !fn(x.Sub(0, k), y.Sub(0, k)) {
			return
		}
		x = x.Sub(k, x.length-k)
		y = y.Sub(k, y.length-k)
	}
}

// equalViews compares two views of the same length unit by unit.
func equalViews(x, y FlatView) bool {
	switch {
	case x.Compressed() && y.Compressed():
		return bytes.Equal(x.Latin1(), y.Latin1())
	case !x.Compressed() && !y.Compressed():
		return slices.Equal(x.UTF16(), y.UTF16())
	}
	for i := 0; i < x.length; i++ {
		if x.At(i) != y.At(i) {
			return false
		}
	}
	return true
}

// Equals reports whether a and b hold the same code units.
func Equals(a, b *String) bool {
	if a == b {
		return true
	}
	if a.length != b.length {
		return false
	}
	if a.HasHash() && b.HasHash() && a.Hash() != b.Hash() {
		return false
	}
	eq := true
	zipLeaves(a, b, func(x, y FlatView) bool {
		eq = equalViews(x, y)
		return eq
	})
	return eq
}

// EqualsUTF16 reports whether s holds exactly the units u.
func EqualsUTF16(s *String, u []uint16) bool {
	if s.Len() != len(u) {
		return false
	}
	off := 0
	it := s.leaves(0, s.Len())
	defer it.release()
	for it.Next() {
		v := it.View()
		for i := 0; i < v.length; i++ {
			if v.At(i) != u[off+i] {
				return false
			}
		}
		off += v.length
	}
	return true
}

// CompareCodeUnits orders a and b by code unit value, then by length, as the
// relational operators do. It returns -1, 0 or +1.
func CompareCodeUnits(a, b *String) int {
	if a == b {
		return 0
	}
	result := 0
	zipLeaves(a, b, func(x, y FlatView) bool {
		if x.Compressed() && y.Compressed() {
			result = bytes.Compare(x.Latin1(), y.Latin1())
			return result == 0
		}
		for i := 0; i < x.length; i++ {
			if cx, cy := x.At(i), y.At(i); cx != cy {
				if cx < cy {
					result = -1
				} else {
					result = 1
				}
				return false
			}
		}
		return true
	})
	if result != 0 {
		return result
	}
	switch {
	case a.length < b.length:
		return -1
	case a.length > b.length:
		return 1
	}
	return 0
}
