package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/text/language"

	"github.com/dshills/ecmastr/internal/config/loader"
	"github.com/dshills/ecmastr/internal/engine/collator"
	"github.com/dshills/ecmastr/internal/engine/ecmastring"
	"github.com/dshills/ecmastr/internal/heap"
	"github.com/dshills/ecmastr/internal/logging"
)

// DefaultIncludeDepth bounds nested "@include" directives.
const DefaultIncludeDepth = 8

// maxStackBufferUnits bounds the collation scratch buffer.
const maxStackBufferUnits = 1 << 16

// Config is the complete engine configuration.
type Config struct {
	Strings   StringsConfig   `mapstructure:"strings"`
	Collation CollationConfig `mapstructure:"collation"`
	Heap      HeapConfig      `mapstructure:"heap"`
	Log       logging.Config  `mapstructure:"log"`

	// Unused lists keys present in a source that match no setting.
	Unused []string `mapstructure:"-"`
}

// StringsConfig controls string construction.
type StringsConfig struct {
	MaxLength       int    `mapstructure:"max_length"`
	MinTreeLength   int    `mapstructure:"min_tree_length"`
	MinSlicedLength int    `mapstructure:"min_sliced_length"`
	DefaultSpace    string `mapstructure:"default_space"`
}

// CollationConfig controls locale comparison.
type CollationConfig struct {
	DefaultLocale    string   `mapstructure:"default_locale"`
	FastPathLocales  []string `mapstructure:"fast_path_locales"`
	StackBufferUnits int      `mapstructure:"stack_buffer_units"`
	DisableFastPath  bool     `mapstructure:"disable_fast_path"`
}

// HeapConfig controls the reference arena. Zero values select the arena
// defaults; a zero MaxBytes means unlimited.
type HeapConfig struct {
	PageSize int   `mapstructure:"page_size"`
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Strings: StringsConfig{
			MaxLength:       ecmastring.MaxLength,
			MinTreeLength:   ecmastring.DefaultMinTreeLength,
			MinSlicedLength: ecmastring.DefaultMinSlicedLength,
			DefaultSpace:    heap.Regular.String(),
		},
		Collation: CollationConfig{
			DefaultLocale:    "en-US",
			FastPathLocales:  append([]string(nil), collator.DefaultFastPathLocales...),
			StackBufferUnits: collator.DefaultStackBufferUnits,
		},
		Log: logging.DefaultConfig(),
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Collation.FastPathLocales = append([]string(nil), c.Collation.FastPathLocales...)
	out.Unused = append([]string(nil), c.Unused...)
	return &out
}

// Space returns the parsed default heap space.
func (c *Config) Space() heap.Space {
	sp, _ := heap.ParseSpace(c.Strings.DefaultSpace)
	return sp
}

// Locale returns the parsed default locale, or und if it does not parse.
func (c *Config) Locale() language.Tag {
	tag, err := language.Parse(c.Collation.DefaultLocale)
	if err != nil {
		return language.Und
	}
	return tag
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	bad := func(path string, value any, code ValidationErrorCode, format string, args ...any) {
		errs = append(errs, &ValidationError{
			Path:    path,
			Message: fmt.Sprintf(format, args...),
			Value:   value,
			Code:    code,
		})
	}

	s := c.Strings
	if s.MaxLength < 1 || s.MaxLength > ecmastring.MaxLength {
		bad("strings.max_length", s.MaxLength, ErrCodeOutOfRange, "must be in [1, %d]", ecmastring.MaxLength)
	}
	if s.MinTreeLength < 1 {
		bad("strings.min_tree_length", s.MinTreeLength, ErrCodeOutOfRange, "must be positive")
	}
	if s.MinSlicedLength < 1 {
		bad("strings.min_sliced_length", s.MinSlicedLength, ErrCodeOutOfRange, "must be positive")
	}
	if _, ok := heap.ParseSpace(s.DefaultSpace); !ok {
		bad("strings.default_space", s.DefaultSpace, ErrCodeInvalidEnum, "unknown heap space")
	}

	col := c.Collation
	if _, err := collator.ParseLocale(col.DefaultLocale); err != nil {
		bad("collation.default_locale", col.DefaultLocale, ErrCodeInvalidLocale, "%v", err)
	}
	for i, l := range col.FastPathLocales {
		if _, err := collator.ParseFastPathLocale(l); err != nil {
			bad(fmt.Sprintf("collation.fast_path_locales[%d]", i), l, ErrCodeInvalidLocale,
				"must be one of %s", strings.Join(collator.DefaultFastPathLocales, ", "))
		}
	}
	if col.StackBufferUnits < 1 || col.StackBufferUnits > maxStackBufferUnits {
		bad("collation.stack_buffer_units", col.StackBufferUnits, ErrCodeOutOfRange, "must be in [1, %d]", maxStackBufferUnits)
	}

	if c.Heap.PageSize < 0 {
		bad("heap.page_size", c.Heap.PageSize, ErrCodeOutOfRange, "must not be negative")
	}
	if c.Heap.MaxBytes < 0 {
		bad("heap.max_bytes", c.Heap.MaxBytes, ErrCodeOutOfRange, "must not be negative")
	}

	if err := c.Log.Validate(); err != nil {
		bad("log", c.Log, ErrCodeInvalidEnum, "%v", err)
	}

	return errors.Join(errs...)
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	fs           loader.FileSystem
	envPrefix    string
	includeDepth int
}

// WithFS reads files from fsys instead of the OS.
func WithFS(fsys loader.FileSystem) LoadOption {
	return func(o *loadOptions) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithEnvPrefix changes the environment prefix. An empty prefix disables
// the environment overlay.
func WithEnvPrefix(prefix string) LoadOption {
	return func(o *loadOptions) {
		o.envPrefix = prefix
	}
}

// WithIncludeDepth bounds nested includes.
func WithIncludeDepth(n int) LoadOption {
	return func(o *loadOptions) {
		if n > 0 {
			o.includeDepth = n
		}
	}
}

// Load builds a Config from the defaults, the file at path (skipped when
// path is empty or the file does not exist) and the environment, then
// validates it.
func Load(path string, opts ...LoadOption) (*Config, error) {
	o := loadOptions{
		fs:           loader.DefaultFS(),
		envPrefix:    loader.DefaultEnvPrefix,
		includeDepth: DefaultIncludeDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}

	raw := make(map[string]any)
	if path != "" {
		m, err := loader.LoadWithIncludes(o.fs, path, o.includeDepth)
		if err != nil {
			return nil, err
		}
		raw = loader.DeepMerge(raw, m)
	}
	if o.envPrefix != "" {
		env, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, err
		}
		raw = loader.DeepMerge(raw, env)
	}

	cfg := Default()
	if err := Decode(raw, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode applies raw over cfg. Keys with no matching setting are recorded
// in cfg.Unused.
func Decode(raw map[string]any, cfg *Config) error {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		Metadata:         &md,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	for i, l := range cfg.Collation.FastPathLocales {
		cfg.Collation.FastPathLocales[i] = strings.TrimSpace(l)
	}
	cfg.Unused = append(cfg.Unused[:0], md.Unused...)
	sort.Strings(cfg.Unused)
	return nil
}
