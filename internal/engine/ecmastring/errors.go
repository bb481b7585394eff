package ecmastring

import (
	"errors"

	"github.com/dshills/ecmastr/internal/heap"
)

// Errors returned by string construction.
var (
	// ErrLengthOverflow indicates a requested length above the factory limit.
	ErrLengthOverflow = errors.New("string length overflow")

	// ErrAllocationFailure indicates the allocator could not satisfy a request.
	ErrAllocationFailure = heap.ErrAllocationFailure

	// ErrOutOfRange indicates a start/length pair outside the source string.
	ErrOutOfRange = errors.New("range out of bounds")

	// ErrMalformedTree indicates tree halves that disagree with the
	// declared length or encoding.
	ErrMalformedTree = errors.New("malformed tree string")
)
