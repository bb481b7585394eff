package collator

import (
	"golang.org/x/text/language"

	"github.com/dshills/ecmastr/internal/engine/encoding"
)

// Oracle is a full Unicode collation implementation.
type Oracle interface {
	// CompareUTF8 compares UTF-8 encoded runs.
	CompareUTF8(a, b []byte, locale language.Tag) Ordering
	// CompareUTF16 compares UTF-16 runs.
	CompareUTF16(a, b []uint16, locale language.Tag) Ordering
}

// TextOracle is an Oracle backed by golang.org/x/text/collate, with
// collators shared through a LocaleCache.
type TextOracle struct {
	cache *LocaleCache
}

// NewTextOracle returns an oracle drawing collators from cache.
func NewTextOracle(cache *LocaleCache) *TextOracle {
	if cache == nil {
		cache = NewLocaleCache()
	}
	return &TextOracle{cache: cache}
}

// CompareUTF8 implements Oracle.
func (o *TextOracle) CompareUTF8(a, b []byte, locale language.Tag) Ordering {
	return FromInt(o.cache.Collator(locale).Compare(a, b))
}

// CompareUTF16 implements Oracle. Lone surrogates compare as U+FFFD.
func (o *TextOracle) CompareUTF16(a, b []uint16, locale language.Tag) Ordering {
	buf := getByteBuf(3 * (len(a) + len(b)))
	defer putByteBuf(buf)

	*buf = encoding.AppendUTF8(*buf, a)
	n := len(*buf)
	*buf = encoding.AppendUTF8(*buf, b)
	ua, ub := (*buf)[:n:n], (*buf)[n:]
	return FromInt(o.cache.Collator(locale).Compare(ua, ub))
}

var _ Oracle = (*TextOracle)(nil)
