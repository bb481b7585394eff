package main

import (
	"fmt"

	"github.com/dshills/ecmastr/internal/engine"
)

func encodingName(s *engine.String) string {
	if s.IsCompressed() {
		return "one-byte"
	}
	return "two-byte"
}

func hexHash(h uint32) string {
	return fmt.Sprintf("0x%08x", h)
}

// describe adds the layout fields shared by several commands under prefix.
func describe(r *report, prefix string, s *engine.String) {
	r.add(prefix+"kind", s.Kind().String())
	r.add(prefix+"encoding", encodingName(s))
	r.add(prefix+"units", s.Len())
	r.add(prefix+"depth", s.Depth())
}
