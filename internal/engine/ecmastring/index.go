package ecmastring

// maxArrayIndex is the largest valid array index, 2^32 - 2.
const maxArrayIndex = 1<<32 - 2

// ToArrayIndex parses s as a canonical array index: decimal digits without
// leading zeros whose value is at most 2^32-2.
func (s *String) ToArrayIndex() (uint32, bool) {
	n := s.Len()
	if n == 0 || n > 10 {
		return 0, false
	}
	first := s.Get(0)
	if first < '0' || first > '9' || (first == '0' && n > 1) {
		return 0, false
	}
	var v uint64
	for i := 0; i < n; i++ {
		c := s.Get(i)
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint64(c-'0')
	}
	if v > maxArrayIndex {
		return 0, false
	}
	return uint32(v), true
}
