package engine

import (
	"errors"

	"github.com/dshills/ecmastr/internal/engine/collator"
	"github.com/dshills/ecmastr/internal/engine/ecmastring"
	"github.com/dshills/ecmastr/internal/heap"
)

// Errors returned by engine operations.
var (
	// ErrAllocationFailure indicates the allocator could not satisfy a request.
	ErrAllocationFailure = heap.ErrAllocationFailure

	// ErrLengthOverflow indicates a result longer than the configured limit.
	ErrLengthOverflow = ecmastring.ErrLengthOverflow

	// ErrOutOfRange indicates a start/length pair outside the source string.
	ErrOutOfRange = ecmastring.ErrOutOfRange

	// ErrInvalidLocale indicates a malformed locale identifier.
	ErrInvalidLocale = collator.ErrInvalidLocale

	// ErrClosed indicates an operation on a closed engine.
	ErrClosed = errors.New("engine is closed")
)
