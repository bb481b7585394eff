//go:build amd64

package encoding

import "golang.org/x/sys/cpu"

// AVX2 parts sustain four independent 64-bit loads per cycle, so the
// unrolled scan only pays off there.
var scan = func() scanLevel {
	if cpu.X86.HasAVX2 {
		return scanWide
	}
	return scanWord
}()
