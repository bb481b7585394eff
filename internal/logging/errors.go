package logging

import "errors"

// Errors returned by logger construction.
var (
	// ErrInvalidLevel indicates an unknown level name.
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrInvalidFormat indicates an unknown output format.
	ErrInvalidFormat = errors.New("invalid log format")
)
