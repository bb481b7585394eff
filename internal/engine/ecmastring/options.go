package ecmastring

import "github.com/dshills/ecmastr/internal/heap"

// Default thresholds.
const (
	// DefaultMinTreeLength is the shortest concatenation kept as a tree.
	DefaultMinTreeLength = 13

	// DefaultMinSlicedLength is the shortest substring kept as a slice.
	DefaultMinSlicedLength = 13
)

// Option configures a Factory.
type Option func(*Factory)

// WithAllocator sets the allocator strings are carved from.
func WithAllocator(a heap.Allocator) Option {
	return func(f *Factory) {
		if a != nil {
			f.alloc = a
		}
	}
}

// WithBarrier sets the write barrier notified of child references.
func WithBarrier(b heap.WriteBarrier) Option {
	return func(f *Factory) {
		if b != nil {
			f.barrier = b
		}
	}
}

// WithSpace sets the heap space new strings are placed in.
func WithSpace(s heap.Space) Option {
	return func(f *Factory) {
		f.space = s
	}
}

// WithMaxLength lowers the maximum string length. Values outside
// (0, MaxLength] are ignored.
func WithMaxLength(n int) Option {
	return func(f *Factory) {
		if n > 0 && n <= MaxLength {
			f.maxLength = n
		}
	}
}

// WithMinTreeLength sets the shortest concatenation result kept as a tree.
func WithMinTreeLength(n int) Option {
	return func(f *Factory) {
		if n >= 0 {
			f.minTreeLength = n
		}
	}
}

// WithMinSlicedLength sets the shortest substring kept as a slice.
func WithMinSlicedLength(n int) Option {
	return func(f *Factory) {
		if n >= 0 {
			f.minSlicedLength = n
		}
	}
}
