package collator

import (
	"sync/atomic"
	"testing"

	"golang.org/x/text/language"

	"github.com/dshills/ecmastr/internal/engine/ecmastring"
)

// countingOracle counts calls into the wrapped oracle.
type countingOracle struct {
	inner Oracle
	utf8  atomic.Int64
	utf16 atomic.Int64
}

func (o *countingOracle) CompareUTF8(a, b []byte, locale language.Tag) Ordering {
	o.utf8.Add(1)
	return o.inner.CompareUTF8(a, b, locale)
}

func (o *countingOracle) CompareUTF16(a, b []uint16, locale language.Tag) Ordering {
	o.utf16.Add(1)
	return o.inner.CompareUTF16(a, b, locale)
}

func (o *countingOracle) calls() int64 {
	return o.utf8.Load() + o.utf16.Load()
}

type testEnv struct {
	f      *ecmastring.Factory
	cache  *LocaleCache
	oracle *countingOracle
	cmp    *Comparator
}

func newTestEnv(t testing.TB, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		f:     ecmastring.NewFactory(),
		cache: NewLocaleCache(),
	}
	env.oracle = &countingOracle{inner: NewTextOracle(env.cache)}
	all := append([]Option{WithLocaleCache(env.cache), WithOracle(env.oracle)}, opts...)
	env.cmp = New(env.f, all...)
	return env
}

func (e *testEnv) str(t testing.TB, s string) *ecmastring.String {
	t.Helper()
	out, err := e.f.FromString(s)
	if err != nil {
		t.Fatalf("FromString(%q): %v", s, err)
	}
	return out
}

func (e *testEnv) view(t testing.TB, s string) ecmastring.FlatView {
	t.Helper()
	v, err := e.f.Flatten(e.str(t, s))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

// tree splits s in the middle into a tree so comparisons see a non-flat
// operand.
func (e *testEnv) tree(t testing.TB, s string) *ecmastring.String {
	t.Helper()
	full := e.str(t, s)
	if full.Len() < 2 {
		return full
	}
	mid := full.Len() / 2
	left, err := e.f.SubStringFast(full, 0, mid)
	if err != nil {
		t.Fatal(err)
	}
	right, err := e.f.SubStringFast(full, mid, full.Len()-mid)
	if err != nil {
		t.Fatal(err)
	}
	out, err := e.f.NewTree(left, right, full.Len(), left.IsCompressed() && right.IsCompressed())
	if err != nil {
		t.Fatal(err)
	}
	return out
}

var enUS = language.AmericanEnglish
