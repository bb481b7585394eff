package engine

import (
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/dshills/ecmastr/internal/engine/collator"
)

// loggingOracle logs every call that reaches the collation oracle, which
// only happens when the fast path is skipped or bails.
type loggingOracle struct {
	inner collator.Oracle
	log   *zerolog.Logger
}

func (o *loggingOracle) CompareUTF8(a, b []byte, locale language.Tag) collator.Ordering {
	r := o.inner.CompareUTF8(a, b, locale)
	o.log.Debug().
		Str("entry", "utf8").
		Stringer("locale", locale).
		Int("a_units", len(a)).
		Int("b_units", len(b)).
		Stringer("result", r).
		Msg("collation oracle")
	return r
}

func (o *loggingOracle) CompareUTF16(a, b []uint16, locale language.Tag) collator.Ordering {
	r := o.inner.CompareUTF16(a, b, locale)
	o.log.Debug().
		Str("entry", "utf16").
		Stringer("locale", locale).
		Int("a_units", len(a)).
		Int("b_units", len(b)).
		Stringer("result", r).
		Msg("collation oracle")
	return r
}
