package heap

import "errors"

// Errors returned by allocators.
var (
	// ErrAllocationFailure indicates the allocator could not satisfy a request.
	ErrAllocationFailure = errors.New("allocation failure")

	// ErrInvalidSize indicates a negative allocation size.
	ErrInvalidSize = errors.New("invalid allocation size")

	// ErrReadOnlySpace indicates an allocation into a sealed read-only space.
	ErrReadOnlySpace = errors.New("read-only space is sealed")
)
