package collator

import (
	"sync/atomic"

	"golang.org/x/text/language"

	"github.com/dshills/ecmastr/internal/engine/ecmastring"
)

// DefaultStackBufferUnits is the suffix length served from pooled scratch
// buffers; longer suffixes get a fresh buffer.
const DefaultStackBufferUnits = 128

// Stats counts comparator activity.
type Stats struct {
	Compares     int64
	SameRef      int64
	FastResolved int64
	FastBailed   int64
	SlowUTF8     int64
	SlowUTF16    int64
}

// Comparator orders strings under a locale.
type Comparator struct {
	factory     *ecmastring.Factory
	cache       *LocaleCache
	oracle      Oracle
	bufferUnits int

	compares     atomic.Int64
	sameRef      atomic.Int64
	fastResolved atomic.Int64
	fastBailed   atomic.Int64
	slowUTF8     atomic.Int64
	slowUTF16    atomic.Int64
}

// Option configures a Comparator.
type Option func(*Comparator)

// WithLocaleCache sets the locale cache. The default oracle draws its
// collators from it.
func WithLocaleCache(c *LocaleCache) Option {
	return func(cmp *Comparator) {
		if c != nil {
			cmp.cache = c
		}
	}
}

// WithOracle replaces the collation oracle.
func WithOracle(o Oracle) Option {
	return func(cmp *Comparator) {
		if o != nil {
			cmp.oracle = o
		}
	}
}

// WithStackBufferUnits sets the suffix length served from pooled buffers.
func WithStackBufferUnits(n int) Option {
	return func(cmp *Comparator) {
		if n > 0 {
			cmp.bufferUnits = n
		}
	}
}

// New creates a comparator that flattens operands with factory.
func New(factory *ecmastring.Factory, opts ...Option) *Comparator {
	c := &Comparator{
		factory:     factory,
		bufferUnits: DefaultStackBufferUnits,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = NewLocaleCache()
	}
	if c.oracle == nil {
		c.oracle = NewTextOracle(c.cache)
	}
	return c
}

// LocaleCache returns the comparator's locale cache.
func (c *Comparator) LocaleCache() *LocaleCache {
	return c.cache
}

// Compare orders a and b under locale. The only error is an allocation
// failure while flattening a tree operand.
func (c *Comparator) Compare(a, b *ecmastring.String, locale language.Tag, opt CompareOption) (Ordering, error) {
	c.compares.Add(1)
	if a == b {
		c.sameRef.Add(1)
		return Equal, nil
	}

	va, err := c.factory.Flatten(a)
	if err != nil {
		return Equal, err
	}
	vb, err := c.factory.Flatten(b)
	if err != nil {
		return Equal, err
	}

	from := 0
	if opt == CompareTryFastPath {
		r := TryFastCompare(va, vb)
		if r.Resolved {
			c.fastResolved.Add(1)
			return r.Result, nil
		}
		c.fastBailed.Add(1)
		from = r.ResumeAt
	}
	return c.slowCompare(va, vb, from, locale), nil
}

// CompareLocale picks the strategy for locale from the cache and compares.
func (c *Comparator) CompareLocale(a, b *ecmastring.String, locale language.Tag) (Ordering, error) {
	return c.Compare(a, b, locale, c.cache.CompareOption(locale, false))
}

// Stats returns a snapshot of the comparator counters.
func (c *Comparator) Stats() Stats {
	return Stats{
		Compares:     c.compares.Load(),
		SameRef:      c.sameRef.Load(),
		FastResolved: c.fastResolved.Load(),
		FastBailed:   c.fastBailed.Load(),
		SlowUTF8:     c.slowUTF8.Load(),
		SlowUTF16:    c.slowUTF16.Load(),
	}
}
