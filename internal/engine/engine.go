package engine

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/dshills/ecmastr/internal/config"
	"github.com/dshills/ecmastr/internal/engine/collator"
	"github.com/dshills/ecmastr/internal/engine/ecmastring"
	"github.com/dshills/ecmastr/internal/engine/intern"
	"github.com/dshills/ecmastr/internal/heap"
)

// Re-export commonly used types for convenience.
type (
	// String is an immutable engine string.
	String = ecmastring.String

	// FlatView is a directly addressable run of code units.
	FlatView = ecmastring.FlatView

	// Ordering is the result of a locale comparison.
	Ordering = collator.Ordering

	// CompareOption selects the comparison strategy.
	CompareOption = collator.CompareOption
)

// Re-export constants.
const (
	Less    = collator.Less
	Equal   = collator.Equal
	Greater = collator.Greater

	CompareNone        = collator.CompareNone
	CompareTryFastPath = collator.CompareTryFastPath
)

// Stats aggregates engine component counters.
type Stats struct {
	Heap       heap.Stats
	HasHeap    bool
	Comparator collator.Stats
	Locales    collator.LocaleCacheStats
	Intern     intern.Stats
}

// Engine is the string engine facade.
type Engine struct {
	id  uuid.UUID
	log zerolog.Logger
	cfg atomic.Pointer[config.Config]

	alloc   heap.Allocator
	arena   *heap.Arena
	barrier heap.WriteBarrier
	oracle  collator.Oracle

	factory *ecmastring.Factory
	cache   *collator.LocaleCache
	cmp     *collator.Comparator
	table   *intern.Table

	localeMu sync.RWMutex
	locale   language.Tag

	mu      sync.Mutex
	manager *config.Manager
	closed  bool

	// Initialization
	initConfig *config.Config
	initLocale *language.Tag
}

// New creates an engine. Without options it uses the default
// configuration, a fresh heap arena and a no-op barrier.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}

	cfg := e.initConfig
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e.cfg.Store(cfg)
	e.initConfig = nil

	if e.id == uuid.Nil {
		e.id = uuid.New()
	}
	e.log = e.log.With().Str("engine", e.id.String()).Logger()

	if e.alloc == nil {
		var aopts []heap.ArenaOption
		if cfg.Heap.PageSize > 0 {
			aopts = append(aopts, heap.WithPageSize(cfg.Heap.PageSize))
		}
		if cfg.Heap.MaxBytes > 0 {
			aopts = append(aopts, heap.WithMaxBytes(cfg.Heap.MaxBytes))
		}
		e.arena = heap.NewArena(aopts...)
		e.alloc = e.arena
	} else if a, ok := e.alloc.(*heap.Arena); ok {
		e.arena = a
	}
	if e.barrier == nil {
		e.barrier = heap.NopBarrier{}
	}

	e.factory = ecmastring.NewFactory(
		ecmastring.WithAllocator(e.alloc),
		ecmastring.WithBarrier(e.barrier),
		ecmastring.WithSpace(cfg.Space()),
		ecmastring.WithMaxLength(cfg.Strings.MaxLength),
		ecmastring.WithMinTreeLength(cfg.Strings.MinTreeLength),
		ecmastring.WithMinSlicedLength(cfg.Strings.MinSlicedLength),
	)

	e.cache = collator.NewLocaleCache(
		collator.WithFastPathLocales(cfg.Collation.FastPathLocales),
		collator.WithFastPathDisabled(cfg.Collation.DisableFastPath),
	)
	inner := e.oracle
	if inner == nil {
		inner = collator.NewTextOracle(e.cache)
	}
	e.cmp = collator.New(e.factory,
		collator.WithLocaleCache(e.cache),
		collator.WithOracle(&loggingOracle{inner: inner, log: &e.log}),
		collator.WithStackBufferUnits(cfg.Collation.StackBufferUnits),
	)
	e.table = intern.New(e.factory)

	e.locale = cfg.Locale()
	if e.initLocale != nil {
		e.locale = *e.initLocale
		e.initLocale = nil
	}

	e.log.Debug().
		Stringer("locale", e.locale).
		Stringer("space", cfg.Space()).
		Int("max_length", cfg.Strings.MaxLength).
		Bool("fast_path", !cfg.Collation.DisableFastPath).
		Msg("engine created")
	return e, nil
}

// ID returns the engine's context id.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Logger returns the engine logger.
func (e *Engine) Logger() *zerolog.Logger {
	return &e.log
}

// Config returns the active configuration. Callers must not modify it.
func (e *Engine) Config() *config.Config {
	return e.cfg.Load()
}

// Factory returns the string factory.
func (e *Engine) Factory() *ecmastring.Factory {
	return e.factory
}

// Comparator returns the locale comparator.
func (e *Engine) Comparator() *collator.Comparator {
	return e.cmp
}

// LocaleCache returns the locale cache.
func (e *Engine) LocaleCache() *collator.LocaleCache {
	return e.cache
}

// InternTable returns the intern table.
func (e *Engine) InternTable() *intern.Table {
	return e.table
}

// Locale returns the default comparison locale.
func (e *Engine) Locale() language.Tag {
	e.localeMu.RLock()
	defer e.localeMu.RUnlock()
	return e.locale
}

// SetLocale changes the default comparison locale.
func (e *Engine) SetLocale(tag language.Tag) {
	e.localeMu.Lock()
	e.locale = tag
	e.localeMu.Unlock()
}

// logFailure records allocation failures, which are the only errors the
// core reports for well-formed calls.
func (e *Engine) logFailure(op string, err error) error {
	if errors.Is(err, heap.ErrAllocationFailure) {
		e.log.Debug().Err(err).Str("op", op).Msg("allocation failed")
	}
	return err
}

// FromUTF8 builds a string from (M)UTF-8 bytes.
func (e *Engine) FromUTF8(b []byte) (*String, error) {
	s, err := e.factory.FromUTF8(b)
	if err != nil {
		return nil, e.logFailure("from_utf8", err)
	}
	return s, nil
}

// FromString builds a string from a Go string.
func (e *Engine) FromString(str string) (*String, error) {
	s, err := e.factory.FromString(str)
	if err != nil {
		return nil, e.logFailure("from_utf8", err)
	}
	return s, nil
}

// FromUTF16 builds a string from UTF-16 code units.
func (e *Engine) FromUTF16(u []uint16) (*String, error) {
	s, err := e.factory.FromUTF16(u)
	if err != nil {
		return nil, e.logFailure("from_utf16", err)
	}
	return s, nil
}

// FromLatin1 builds a compressed string from one-byte units.
func (e *Engine) FromLatin1(b []byte) (*String, error) {
	s, err := e.factory.FromLatin1(b)
	if err != nil {
		return nil, e.logFailure("from_latin1", err)
	}
	return s, nil
}

// Concat joins a and b.
func (e *Engine) Concat(a, b *String) (*String, error) {
	s, err := e.factory.Concat(a, b)
	if err != nil {
		return nil, e.logFailure("concat", err)
	}
	return s, nil
}

// SubString returns units [start, start+length) of s.
func (e *Engine) SubString(s *String, start, length int) (*String, error) {
	out, err := e.factory.SubString(s, start, length)
	if err != nil {
		return nil, e.logFailure("sub_string", err)
	}
	return out, nil
}

// Flatten returns a flat view of s.
func (e *Engine) Flatten(s *String) (FlatView, error) {
	v, err := e.factory.Flatten(s)
	if err != nil {
		return FlatView{}, e.logFailure("flatten", err)
	}
	return v, nil
}

// Hash returns the content hash of s.
func (e *Engine) Hash(s *String) uint32 {
	return s.Hash()
}

// Equals reports whether a and b hold the same code units.
func (e *Engine) Equals(a, b *String) bool {
	return ecmastring.Equals(a, b)
}

// Intern returns the canonical string for the content of s.
func (e *Engine) Intern(s *String) (*String, error) {
	c, err := e.table.Intern(s)
	if err != nil {
		return nil, e.logFailure("intern", err)
	}
	return c, nil
}

// Compare orders a and b under the default locale, choosing the strategy
// from the locale cache.
func (e *Engine) Compare(a, b *String) (Ordering, error) {
	return e.CompareLocale(a, b, e.Locale(), false)
}

// CompareLocale orders a and b under locale. hasOptions reports that the
// caller supplied explicit collation options, which rules out the fast
// path.
func (e *Engine) CompareLocale(a, b *String, locale language.Tag, hasOptions bool) (Ordering, error) {
	opt := e.cache.CompareOption(locale, hasOptions)
	ord, err := e.cmp.Compare(a, b, locale, opt)
	if err != nil {
		return Equal, e.logFailure("compare", err)
	}
	return ord, nil
}

// CompareWith orders a and b under locale with an explicit strategy.
func (e *Engine) CompareWith(a, b *String, locale language.Tag, opt CompareOption) (Ordering, error) {
	ord, err := e.cmp.Compare(a, b, locale, opt)
	if err != nil {
		return Equal, e.logFailure("compare", err)
	}
	return ord, nil
}

// Stats returns a snapshot of component counters.
func (e *Engine) Stats() Stats {
	st := Stats{
		Comparator: e.cmp.Stats(),
		Locales:    e.cache.Stats(),
		Intern:     e.table.Stats(),
	}
	if e.arena != nil {
		st.Heap = e.arena.Stats()
		st.HasHeap = true
	}
	return st
}

// Reload applies cfg. Collation settings take effect immediately and drop
// every cached locale decision; string, heap and log settings keep their
// creation-time values and a differing value is logged.
func (e *Engine) Reload(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.Clone()
	old := e.cfg.Load()

	if err := e.cache.SetFastPathLocales(cfg.Collation.FastPathLocales); err != nil {
		return err
	}
	e.cache.SetFastPathDisabled(cfg.Collation.DisableFastPath)
	e.cache.Invalidate()
	if old.Collation.DefaultLocale != cfg.Collation.DefaultLocale {
		e.SetLocale(cfg.Locale())
	}

	if old.Strings != cfg.Strings || old.Heap != cfg.Heap || old.Log != cfg.Log {
		e.log.Warn().Msg("string, heap and log settings changed; they apply to new engines only")
		cfg.Strings, cfg.Heap, cfg.Log = old.Strings, old.Heap, old.Log
	}
	if old.Collation.StackBufferUnits != cfg.Collation.StackBufferUnits {
		e.log.Warn().
			Int("stack_buffer_units", cfg.Collation.StackBufferUnits).
			Msg("stack buffer size applies to new engines only")
		cfg.Collation.StackBufferUnits = old.Collation.StackBufferUnits
	}
	e.cfg.Store(cfg)

	e.log.Info().
		Str("locale", cfg.Collation.DefaultLocale).
		Strs("fast_path_locales", cfg.Collation.FastPathLocales).
		Bool("fast_path_disabled", cfg.Collation.DisableFastPath).
		Bool("locales_changed", !slices.Equal(old.Collation.FastPathLocales, cfg.Collation.FastPathLocales)).
		Msg("configuration reloaded")
	return nil
}

// WatchConfig loads the configuration at path, applies it, and reapplies
// it whenever the file changes.
func (e *Engine) WatchConfig(path string, debounce time.Duration, opts ...config.LoadOption) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.manager != nil {
		if err := e.manager.Close(); err != nil {
			return err
		}
		e.manager = nil
	}

	m, err := config.NewManager(path, opts...)
	if err != nil {
		return err
	}
	if err := e.Reload(m.Current()); err != nil {
		return err
	}
	for _, key := range m.Current().Unused {
		e.log.Warn().Str("key", key).Str("path", path).Msg("unknown config key")
	}
	m.Subscribe(func(_, next *config.Config) {
		if err := e.Reload(next); err != nil {
			e.log.Error().Err(err).Str("path", path).Msg("config reload rejected")
		}
	})
	m.OnError(func(err error) {
		e.log.Error().Err(err).Str("path", path).Msg("config reload failed")
	})
	if err := m.Watch(debounce); err != nil {
		return err
	}
	e.manager = m
	e.log.Debug().Str("path", path).Msg("watching config")
	return nil
}

// Close stops config watching. The engine's strings stay valid.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	if e.manager != nil {
		err := e.manager.Close()
		e.manager = nil
		return err
	}
	return nil
}
