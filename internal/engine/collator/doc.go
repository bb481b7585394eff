// Package collator implements locale-aware string comparison.
//
// Comparison runs in two stages. The fast path walks the common prefix of
// the two flattened operands using fixed primary and tertiary weight tables
// that agree with full Unicode collation for printable ASCII in a small set
// of locales. It either resolves the comparison or bails out with a resume
// offset, and it never returns an answer the full collation would disagree
// with. The slow path hands the suffix from that offset to an Oracle.
//
// Whether the fast path may run is decided per locale by a LocaleCache:
//
//	cache := collator.NewLocaleCache()
//	cmp := collator.New(factory, collator.WithLocaleCache(cache))
//	tag := language.MustParse("en-US")
//	ord, err := cmp.Compare(a, b, tag, cache.CompareOption(tag, false))
//
// TextOracle implements Oracle with golang.org/x/text/collate.
package collator
