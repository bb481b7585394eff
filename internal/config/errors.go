package config

import (
	"errors"
	"fmt"

	"github.com/dshills/ecmastr/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidValue indicates a setting outside its allowed range or set.
	ErrInvalidValue = errors.New("invalid config value")

	// ErrTypeMismatch indicates a value that cannot be decoded into its
	// setting's type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ParseError is a syntax error in a configuration file.
type ParseError = loader.ParseError

// ValidationError reports one rejected setting. Path is the dotted key as
// written in a file, e.g. "collation.stack_buffer_units".
type ValidationError struct {
	Path    string
	Message string
	Value   any
	Code    ValidationErrorCode
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s = %v: %s", e.Path, e.Value, e.Message)
}

// Is matches ErrInvalidValue.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidValue
}

// ValidationErrorCode classifies a ValidationError.
type ValidationErrorCode uint8

const (
	ErrCodeOutOfRange ValidationErrorCode = iota
	ErrCodeInvalidEnum
	ErrCodeInvalidLocale
)

func (c ValidationErrorCode) String() string {
	switch c {
	case ErrCodeOutOfRange:
		return "out_of_range"
	case ErrCodeInvalidEnum:
		return "invalid_enum"
	case ErrCodeInvalidLocale:
		return "invalid_locale"
	default:
		return "unknown"
	}
}
