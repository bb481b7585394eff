package collator

import "errors"

// Errors returned by locale handling.
var (
	// ErrInvalidLocale indicates a locale identifier that cannot be parsed.
	ErrInvalidLocale = errors.New("invalid locale")
)
