package collator

import (
	"golang.org/x/text/language"

	"github.com/dshills/ecmastr/internal/engine/ecmastring"
)

// slowCompare hands the suffixes of a and b starting at from to the oracle.
// The units before from are identical on both sides.
func (c *Comparator) slowCompare(a, b ecmastring.FlatView, from int, locale language.Tag) Ordering {
	a = a.Sub(from, a.Len()-from)
	b = b.Sub(from, b.Len()-from)

	if a.Compressed() && b.Compressed() && a.IsASCII() && b.IsASCII() {
		c.slowUTF8.Add(1)
		return c.oracle.CompareUTF8(a.Latin1(), b.Latin1(), locale)
	}

	c.slowUTF16.Add(1)
	ua, releaseA := c.utf16View(a)
	defer releaseA()
	ub, releaseB := c.utf16View(b)
	defer releaseB()
	return c.oracle.CompareUTF16(ua, ub, locale)
}

// utf16View returns the units of v. Wide views are returned in place;
// compressed ones are widened into a pooled buffer for short suffixes or a
// fresh one for long suffixes.
func (c *Comparator) utf16View(v ecmastring.FlatView) ([]uint16, func()) {
	if !v.Compressed() {
		return v.UTF16(), func() {}
	}
	if v.Len() > c.bufferUnits {
		return v.AppendUTF16(make([]uint16, 0, v.Len())), func() {}
	}
	buf := getUnitBuf(c.bufferUnits)
	*buf = v.AppendUTF16(*buf)
	return *buf, func() { putUnitBuf(buf) }
}
