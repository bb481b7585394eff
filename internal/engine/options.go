package engine

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/dshills/ecmastr/internal/config"
	"github.com/dshills/ecmastr/internal/engine/collator"
	"github.com/dshills/ecmastr/internal/heap"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithConfig sets the configuration. The engine keeps its own copy.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		if cfg != nil {
			e.initConfig = cfg.Clone()
		}
	}
}

// WithAllocator replaces the heap arena built from the configuration.
func WithAllocator(a heap.Allocator) Option {
	return func(e *Engine) {
		e.alloc = a
	}
}

// WithBarrier sets the write barrier notified of string references.
func WithBarrier(b heap.WriteBarrier) Option {
	return func(e *Engine) {
		e.barrier = b
	}
}

// WithLogger sets the logger. The engine adds its context id.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithLocale overrides the configured default locale.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) {
		e.initLocale = &tag
	}
}

// WithOracle replaces the x/text collation oracle.
func WithOracle(o collator.Oracle) Option {
	return func(e *Engine) {
		e.oracle = o
	}
}

// WithContextID sets the context id instead of generating one.
func WithContextID(id uuid.UUID) Option {
	return func(e *Engine) {
		e.id = id
	}
}
