package intern

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/ecmastr/internal/engine/ecmastring"
)

const defaultCapacity = 64

// Stats counts table activity.
type Stats struct {
	Strings    int
	Lookups    int64
	Hits       int64
	Inserts    int64
	Collisions int64
}

// Table is a concurrent intern table.
type Table struct {
	factory *ecmastring.Factory

	mu      sync.RWMutex
	buckets map[uint32][]*ecmastring.String
	count   int

	lookups    atomic.Int64
	hits       atomic.Int64
	inserts    atomic.Int64
	collisions atomic.Int64
}

// Option configures a Table.
type Option func(*Table)

// WithCapacity presizes the bucket map.
func WithCapacity(n int) Option {
	return func(t *Table) {
		if n > 0 {
			t.buckets = make(map[uint32][]*ecmastring.String, n)
		}
	}
}

// New creates a table. The factory flattens tree strings before insertion.
func New(factory *ecmastring.Factory, opts ...Option) *Table {
	t := &Table{factory: factory}
	for _, opt := range opts {
		opt(t)
	}
	if t.buckets == nil {
		t.buckets = make(map[uint32][]*ecmastring.String, defaultCapacity)
	}
	return t
}

// Intern returns the canonical string for the content of s. If none exists,
// s becomes canonical. The only error is an allocation failure while
// flattening a tree.
func (t *Table) Intern(s *ecmastring.String) (*ecmastring.String, error) {
	if s.IsInterned() {
		return s, nil
	}
	h := s.Hash()
	if c := t.lookup(h, s); c != nil {
		return c, nil
	}

	if s.IsTree() {
		if _, err := t.factory.Flatten(s); err != nil {
			return nil, err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	bucket := t.buckets[h]
	for _, c := range bucket {
		if ecmastring.Equals(c, s) {
			t.hits.Add(1)
			return c, nil
		}
	}
	if len(bucket) > 0 {
		t.collisions.Add(1)
	}
	s.SetInterned()
	t.buckets[h] = append(bucket, s)
	t.count++
	t.inserts.Add(1)
	return s, nil
}

// InternUTF8 builds a string from b with the table's factory and interns it.
func (t *Table) InternUTF8(b []byte) (*ecmastring.String, error) {
	s, err := t.factory.FromUTF8(b)
	if err != nil {
		return nil, err
	}
	return t.Intern(s)
}

// Lookup returns the canonical string equal to s, or nil.
func (t *Table) Lookup(s *ecmastring.String) *ecmastring.String {
	return t.lookup(s.Hash(), s)
}

// LookupUTF16 returns the canonical string holding exactly u, or nil.
func (t *Table) LookupUTF16(u []uint16) *ecmastring.String {
	h := ecmastring.HashUTF16(0, u)
	t.lookups.Add(1)
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, c := range t.buckets[h] {
		if ecmastring.EqualsUTF16(c, u) {
			t.hits.Add(1)
			return c
		}
	}
	return nil
}

func (t *Table) lookup(h uint32, s *ecmastring.String) *ecmastring.String {
	t.lookups.Add(1)
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, c := range t.buckets[h] {
		if ecmastring.Equals(c, s) {
			t.hits.Add(1)
			return c
		}
	}
	return nil
}

// Len returns the number of canonical strings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}

// Range calls fn for each canonical string until fn returns false. The
// table is read-locked for the duration.
func (t *Table) Range(fn func(*ecmastring.String) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, bucket := range t.buckets {
		for _, s := range bucket {
			if !fn(s) {
				return
			}
		}
	}
}

// Stats returns a snapshot of the table counters.
func (t *Table) Stats() Stats {
	return Stats{
		Strings:    t.Len(),
		Lookups:    t.lookups.Load(),
		Hits:       t.hits.Load(),
		Inserts:    t.inserts.Load(),
		Collisions: t.collisions.Load(),
	}
}
