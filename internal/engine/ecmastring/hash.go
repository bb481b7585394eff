package ecmastring

// Hash returns the content hash of s, computing and caching it on first use.
func (s *String) Hash() uint32 {
	if c := s.hash.Load(); c&hashValid != 0 {
		return uint32(c)
	}
	h := s.computeHash()
	s.hash.Store(hashValid | uint64(h))
	return h
}

// HasHash reports whether the hash is already cached.
func (s *String) HasHash() bool {
	return s.hash.Load()&hashValid != 0
}

func (s *String) computeHash() uint32 {
	var h uint32
	it := s.leaves(0, int(s.length))
	defer it.release()
	for it.Next() {
		v := it.View()
		if v.Compressed() {
			h = HashLatin1(h, v.Latin1())
		} else {
			h = HashUTF16(h, v.UTF16())
		}
	}
	return h
}

// HashLatin1 continues the rolling hash h over one-byte units.
func HashLatin1(h uint32, b []byte) uint32 {
	for _, c := range b {
		h = h*31 + uint32(c)
	}
	return h
}

// HashUTF16 continues the rolling hash h over two-byte units.
func HashUTF16(h uint32, u []uint16) uint32 {
	for _, c := range u {
		h = h*31 + uint32(c)
	}
	return h
}
