package collator

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultFastPathLocales are the base languages whose collation of printable
// ASCII matches the weight tables. A configured allow-list may only narrow
// this set.
var DefaultFastPathLocales = []string{"en", "de", "fr", "it", "nl", "pt"}

var vettedBases = mustParseBases(DefaultFastPathLocales)

func mustParseBases(locales []string) map[language.Base]bool {
	out := make(map[language.Base]bool, len(locales))
	for _, l := range locales {
		out[language.MustParseBase(l)] = true
	}
	return out
}

// ParseFastPathLocale parses one allow-list entry. Only base languages
// from DefaultFastPathLocales are accepted; others tailor ASCII (da sorts
// "aa" after "z", cs sorts "ch" after "h") and would make the fast path
// disagree with the oracle.
func ParseFastPathLocale(s string) (language.Base, error) {
	b, err := language.ParseBase(s)
	if err != nil {
		return language.Base{}, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, s, err)
	}
	if !vettedBases[b] {
		return language.Base{}, fmt.Errorf("%w: %q has no fast-path weight tables", ErrInvalidLocale, s)
	}
	return b, nil
}

// tailoredTags are tags whose base language is allow-listed but whose
// collation differs beyond the tables. fr-CA compares accents backwards.
var tailoredTags = map[string]bool{
	"fr-CA": true,
}

// Collator is a locale collator safe for concurrent use.
type Collator struct {
	mu  sync.Mutex
	tag language.Tag
	c   *collate.Collator
}

// Tag returns the locale the collator was built for.
func (c *Collator) Tag() language.Tag {
	return c.tag
}

// CompareString compares UTF-8 strings.
func (c *Collator) CompareString(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.CompareString(a, b)
}

// Compare compares UTF-8 byte slices.
func (c *Collator) Compare(a, b []byte) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.Compare(a, b)
}

type optionKey struct {
	locale     string
	hasOptions bool
}

// LocaleCacheStats counts cache activity.
type LocaleCacheStats struct {
	OptionHits      int64
	OptionMisses    int64
	CollatorsBuilt  int64
	Invalidations   int64
	FastPathLocales int
}

// LocaleCache holds per-process locale data: the available locales, the
// compare option chosen per locale, and built collators. All of it derives
// from static data, so it may be dropped at any time with Invalidate.
type LocaleCache struct {
	mu sync.RWMutex

	fastBases    map[language.Base]bool
	fastDisabled bool

	available []language.Tag
	matcher   language.Matcher
	options   map[optionKey]CompareOption
	collators map[string]*Collator

	optionHits     atomic.Int64
	optionMisses   atomic.Int64
	collatorsBuilt atomic.Int64
	invalidations  atomic.Int64
}

// CacheOption configures a LocaleCache.
type CacheOption func(*LocaleCache)

// WithFastPathLocales replaces the fast-path allow-list. Entries rejected by
// ParseFastPathLocale are ignored; use SetFastPathLocales to see errors.
func WithFastPathLocales(locales []string) CacheOption {
	return func(c *LocaleCache) {
		c.fastBases = parseBases(locales)
	}
}

// WithFastPathDisabled turns the fast path off for every locale.
func WithFastPathDisabled(disabled bool) CacheOption {
	return func(c *LocaleCache) {
		c.fastDisabled = disabled
	}
}

// NewLocaleCache creates an empty cache.
func NewLocaleCache(opts ...CacheOption) *LocaleCache {
	c := &LocaleCache{
		fastBases: parseBases(DefaultFastPathLocales),
		options:   make(map[optionKey]CompareOption),
		collators: make(map[string]*Collator),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func parseBases(locales []string) map[language.Base]bool {
	out := make(map[language.Base]bool, len(locales))
	for _, l := range locales {
		if b, err := ParseFastPathLocale(l); err == nil {
			out[b] = true
		}
	}
	return out
}

// SetFastPathLocales replaces the allow-list and drops cached decisions.
// Every entry must pass ParseFastPathLocale; on error the list is unchanged.
func (c *LocaleCache) SetFastPathLocales(locales []string) error {
	bases := make(map[language.Base]bool, len(locales))
	for _, l := range locales {
		b, err := ParseFastPathLocale(l)
		if err != nil {
			return err
		}
		bases[b] = true
	}
	c.mu.Lock()
	c.fastBases = bases
	c.options = make(map[optionKey]CompareOption)
	c.mu.Unlock()
	return nil
}

// SetFastPathDisabled turns the fast path off or on and drops cached
// decisions.
func (c *LocaleCache) SetFastPathDisabled(disabled bool) {
	c.mu.Lock()
	c.fastDisabled = disabled
	c.options = make(map[optionKey]CompareOption)
	c.mu.Unlock()
}

// CompareOption returns the strategy for comparing under locale. The fast
// path is chosen only when the caller supplied no explicit options and the
// locale is allow-listed without variants or extensions.
func (c *LocaleCache) CompareOption(locale language.Tag, hasOptions bool) CompareOption {
	key := optionKey{locale: locale.String(), hasOptions: hasOptions}

	c.mu.RLock()
	opt, ok := c.options[key]
	c.mu.RUnlock()
	if ok {
		c.optionHits.Add(1)
		return opt
	}
	c.optionMisses.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()
	opt = c.decide(locale, hasOptions)
	c.options[key] = opt
	return opt
}

// decide computes the strategy. Caller must hold c.mu.
func (c *LocaleCache) decide(locale language.Tag, hasOptions bool) CompareOption {
	if hasOptions || c.fastDisabled {
		return CompareNone
	}
	if len(locale.Variants()) > 0 || len(locale.Extensions()) > 0 {
		return CompareNone
	}
	if tailoredTags[locale.String()] {
		return CompareNone
	}
	base, _ := locale.Base()
	if !c.fastBases[base] {
		return CompareNone
	}
	return CompareTryFastPath
}

// Available returns the locales with collation data.
func (c *LocaleCache) Available() []language.Tag {
	c.mu.RLock()
	avail := c.available
	c.mu.RUnlock()
	if avail != nil {
		return avail
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.available == nil {
		c.available = collate.Supported()
		c.matcher = language.NewMatcher(c.available)
	}
	return c.available
}

// IsAvailable reports whether locale matches a locale with collation data.
func (c *LocaleCache) IsAvailable(locale language.Tag) bool {
	c.Available()
	c.mu.RLock()
	m := c.matcher
	c.mu.RUnlock()
	if m == nil {
		return false
	}
	_, _, conf := m.Match(locale)
	return conf != language.No
}

// Collator returns the shared collator for locale, building it on first use.
func (c *LocaleCache) Collator(locale language.Tag) *Collator {
	key := locale.String()

	c.mu.RLock()
	col, ok := c.collators[key]
	c.mu.RUnlock()
	if ok {
		return col
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if col, ok := c.collators[key]; ok {
		return col
	}
	col = &Collator{tag: locale, c: collate.New(locale)}
	c.collators[key] = col
	c.collatorsBuilt.Add(1)
	return col
}

// Invalidate drops every cached entry.
func (c *LocaleCache) Invalidate() {
	c.mu.Lock()
	c.available = nil
	c.matcher = nil
	c.options = make(map[optionKey]CompareOption)
	c.collators = make(map[string]*Collator)
	c.mu.Unlock()
	c.invalidations.Add(1)
}

// Stats returns a snapshot of cache counters.
func (c *LocaleCache) Stats() LocaleCacheStats {
	c.mu.RLock()
	n := len(c.fastBases)
	if c.fastDisabled {
		n = 0
	}
	c.mu.RUnlock()
	return LocaleCacheStats{
		OptionHits:      c.optionHits.Load(),
		OptionMisses:    c.optionMisses.Load(),
		CollatorsBuilt:  c.collatorsBuilt.Load(),
		Invalidations:   c.invalidations.Load(),
		FastPathLocales: n,
	}
}

// ParseLocale parses a BCP 47 locale identifier.
func ParseLocale(s string) (language.Tag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, s, err)
	}
	return tag, nil
}
