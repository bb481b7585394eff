package logging

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config describes logger output.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`

	// File enables a rotated file sink in addition to the main output.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig returns info-level logging to stderr with format detection.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     FormatAuto,
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Validate checks the level, format and rotation limits.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "", FormatAuto, FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return fmt.Errorf("%w: negative rotation limit", ErrInvalidFormat)
	}
	return nil
}

// ParseLevel maps a level name to a zerolog level. The empty string is
// info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return lvl, nil
}
