package ecmastring

import (
	"testing"

	"github.com/dshills/ecmastr/internal/engine/encoding"
	"github.com/dshills/ecmastr/internal/heap"
)

type testEnv struct {
	f       *Factory
	arena   *heap.Arena
	barrier *heap.RecordingBarrier
}

func newTestEnv(t testing.TB, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{arena: heap.NewArena(), barrier: &heap.RecordingBarrier{}}
	all := append([]Option{WithAllocator(env.arena), WithBarrier(env.barrier)}, opts...)
	env.f = NewFactory(all...)
	return env
}

func (e *testEnv) str(t testing.TB, s string) *String {
	t.Helper()
	out, err := e.f.FromString(s)
	if err != nil {
		t.Fatalf("FromString(%q): %v", s, err)
	}
	return out
}

// asFlat builds a line string holding units.
func (e *testEnv) asFlat(t testing.TB, units []uint16) *String {
	t.Helper()
	s, err := e.f.FromUTF16(units)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// asSliced builds a sliced string over a padded parent holding units.
func (e *testEnv) asSliced(t testing.TB, units []uint16) *String {
	t.Helper()
	padded := append(append([]uint16{'<', '<'}, units...), '>', '>')
	parent := e.asFlat(t, padded)
	s, err := e.f.NewSliced(parent, 2, len(units))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// asTree builds a balanced tree of one- and two-unit leaves holding units.
func (e *testEnv) asTree(t testing.TB, units []uint16) *String {
	t.Helper()
	if len(units) <= 2 {
		return e.asFlat(t, units)
	}
	mid := len(units) / 2
	left := e.asTree(t, units[:mid])
	right := e.asTree(t, units[mid:])
	s, err := e.f.NewTree(left, right, len(units), left.IsCompressed() && right.IsCompressed())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func u16(s string) []uint16 {
	return encoding.EncodeUTF16(s)
}
