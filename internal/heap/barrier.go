package heap

import "sync"

// Object is anything the host collector can trace.
type Object interface {
	HeapKind() Kind
}

// Field names the reference slot being written.
type Field uint8

const (
	// FieldParent is a sliced string's parent.
	FieldParent Field = iota
	// FieldFirst is a tree string's left half.
	FieldFirst
	// FieldSecond is a tree string's right half.
	FieldSecond
)

// String returns the field name.
func (f Field) String() string {
	switch f {
	case FieldParent:
		return "parent"
	case FieldFirst:
		return "first"
	case FieldSecond:
		return "second"
	default:
		return "unknown"
	}
}

// WriteBarrier is notified each time an object reference is stored into
// another object.
type WriteBarrier interface {
	RecordReference(holder Object, field Field, referent Object)
}

// NopBarrier is a WriteBarrier that records nothing.
type NopBarrier struct{}

// RecordReference implements WriteBarrier.
func (NopBarrier) RecordReference(Object, Field, Object) {}

// Reference is one recorded store.
type Reference struct {
	Holder   Object
	Field    Field
	Referent Object
}

// RecordingBarrier keeps every store it is told about.
type RecordingBarrier struct {
	mu   sync.Mutex
	refs []Reference
}

// RecordReference implements WriteBarrier.
func (b *RecordingBarrier) RecordReference(holder Object, field Field, referent Object) {
	b.mu.Lock()
	b.refs = append(b.refs, Reference{Holder: holder, Field: field, Referent: referent})
	b.mu.Unlock()
}

// References returns a copy of the recorded stores in order.
func (b *RecordingBarrier) References() []Reference {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Reference, len(b.refs))
	copy(out, b.refs)
	return out
}

// ReferencesFrom returns the stores whose holder is h.
func (b *RecordingBarrier) ReferencesFrom(h Object) []Reference {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Reference
	for _, r := range b.refs {
		if r.Holder == h {
			out = append(out, r)
		}
	}
	return out
}

// Reset discards all records.
func (b *RecordingBarrier) Reset() {
	b.mu.Lock()
	b.refs = nil
	b.mu.Unlock()
}

var (
	_ WriteBarrier = NopBarrier{}
	_ WriteBarrier = (*RecordingBarrier)(nil)
)
