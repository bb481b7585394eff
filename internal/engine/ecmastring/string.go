package ecmastring

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/dshills/ecmastr/internal/engine/encoding"
	"github.com/dshills/ecmastr/internal/heap"
)

// MaxLength is the largest code-unit length any string may have.
const MaxLength = 1<<30 - 1

const (
	flagInterned uint32 = 1 << iota
	flagShared
)

// hashValid marks the hash cell as holding a computed value.
const hashValid = 1 << 32

// String is an immutable engine string value.
type String struct {
	kind       heap.Kind
	space      heap.Space
	compressed bool
	length     uint32

	flags atomic.Uint32
	hash  atomic.Uint64

	// LineString
	data []byte

	// SlicedString
	parent *String
	start  uint32

	// TreeString
	first  atomic.Pointer[String]
	second atomic.Pointer[String]
}

var empty = newEmpty()

func newEmpty() *String {
	s := &String{kind: heap.LineString, space: heap.ReadOnly, compressed: true, data: []byte{}}
	s.hash.Store(hashValid)
	s.flags.Store(flagShared)
	return s
}

// Empty returns the empty string singleton.
func Empty() *String {
	return empty
}

// HeapKind implements heap.Object.
func (s *String) HeapKind() heap.Kind {
	return s.kind
}

// Kind returns the string variant.
func (s *String) Kind() heap.Kind {
	return s.kind
}

// Space returns the heap space the string was allocated in.
func (s *String) Space() heap.Space {
	return s.space
}

// Len returns the number of code units.
func (s *String) Len() int {
	return int(s.length)
}

// IsEmpty reports whether the string has no code units.
func (s *String) IsEmpty() bool {
	return s.length == 0
}

// IsCompressed reports whether the string uses the one-byte encoding.
func (s *String) IsCompressed() bool {
	return s.compressed
}

// IsLine reports whether s owns its character data.
func (s *String) IsLine() bool {
	return s.kind == heap.LineString
}

// IsSliced reports whether s is a window into a line string.
func (s *String) IsSliced() bool {
	return s.kind == heap.SlicedString
}

// IsTree reports whether s is a concatenation node.
func (s *String) IsTree() bool {
	return s.kind == heap.TreeString
}

// IsFlat reports whether the units of s are directly addressable without
// materialization: line and sliced strings, and trees already flattened.
func (s *String) IsFlat() bool {
	switch s.kind {
	case heap.LineString, heap.SlicedString:
		return true
	case heap.TreeString:
		return s.flattenedTree() != nil
	default:
		panic(fmt.Sprintf("ecmastring: unknown kind %d", s.kind))
	}
}

// IsInterned reports whether s is the canonical copy of its content.
func (s *String) IsInterned() bool {
	return s.flags.Load()&flagInterned != 0
}

// SetInterned marks s as canonical. The flag is never cleared.
func (s *String) SetInterned() {
	s.flags.Or(flagInterned | flagShared)
}

// markShared records that s is referenced from another object.
func (s *String) markShared() {
	if debugChecks {
		s.flags.Or(flagShared)
	}
}

func (s *String) isShared() bool {
	return s.flags.Load()&flagShared != 0
}

// Parent returns a sliced string's parent and start offset.
func (s *String) Parent() (*String, int) {
	if debugChecks {
		debugAssert(s.kind == heap.SlicedString, "Parent on %s", s.kind)
	}
	return s.parent, int(s.start)
}

// Children returns a tree string's two halves. For a tree that has been
// flattened the first half is the flat copy and the second is empty.
func (s *String) Children() (first, second *String) {
	if debugChecks {
		debugAssert(s.kind == heap.TreeString, "Children on %s", s.kind)
	}
	return s.children()
}

// children loads a consistent pair of halves. Cached flattening stores the
// first half before the second, so a mismatched pair means the store is in
// progress and the first half already covers the whole string.
func (s *String) children() (first, second *String) {
	for {
		f := s.first.Load()
		if f.length == s.length {
			return f, empty
		}
		sec := s.second.Load()
		if f.length+sec.length == s.length {
			return f, sec
		}
	}
}

// flattenedTree returns the cached flat copy of a tree, or nil.
func (s *String) flattenedTree() *String {
	f := s.first.Load()
	if f.length == s.length && f.kind != heap.TreeString {
		return f
	}
	return nil
}

// Depth returns the height of the tree rooted at s. Leaves have depth 0.
func (s *String) Depth() int {
	if s.kind != heap.TreeString {
		return 0
	}
	f, sec := s.children()
	return 1 + max(f.Depth(), sec.Depth())
}

// Latin1 returns the buffer of a compressed line string. Callers may only
// write through it to fill a string returned by NewLine before it escapes.
func (s *String) Latin1() []byte {
	if debugChecks {
		debugAssert(s.kind == heap.LineString && s.compressed, "Latin1 on %s compressed=%v", s.kind, s.compressed)
	}
	return s.data[:s.length]
}

// UTF16 returns the buffer of a wide line string. Callers may only write
// through it to fill a string returned by NewLine before it escapes.
func (s *String) UTF16() []uint16 {
	if debugChecks {
		debugAssert(s.kind == heap.LineString && !s.compressed, "UTF16 on %s compressed=%v", s.kind, s.compressed)
	}
	return wideView(s.data)[:s.length]
}

// wideView reinterprets allocator-aligned bytes as UTF-16 units.
func wideView(b []byte) []uint16 {
	if len(b) < 2 {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(unsafe.SliceData(b))), len(b)/2)
}

// lineUnit returns unit i of a line string.
func (s *String) lineUnit(i int) uint16 {
	if s.compressed {
		return uint16(s.data[i])
	}
	return wideView(s.data)[i]
}

// Get returns the code unit at index. It panics if index is out of range.
func (s *String) Get(index int) uint16 {
	if index < 0 || index >= int(s.length) {
		panic(fmt.Sprintf("ecmastring: index %d out of range [0:%d]", index, s.length))
	}
	n := s
	for {
		switch n.kind {
		case heap.LineString:
			return n.lineUnit(index)
		case heap.SlicedString:
			return n.parent.lineUnit(int(n.start) + index)
		case heap.TreeString:
			f, sec := n.children()
			if index < int(f.length) {
				n = f
			} else {
				index -= int(f.length)
				n = sec
			}
		default:
			panic(fmt.Sprintf("ecmastring: unknown kind %d", n.kind))
		}
	}
}

// At is Get with a bounds report instead of a panic.
func (s *String) At(index int) (uint16, bool) {
	if index < 0 || index >= int(s.length) {
		return 0, false
	}
	return s.Get(index), true
}

// WriteToFlat copies every code unit of s into dst, widening compressed
// data, and returns the number of units written. dst must hold Len units.
func (s *String) WriteToFlat(dst []uint16) int {
	return s.CopyRange(dst, 0, int(s.length))
}

// WriteToFlatLatin1 copies every unit of a compressed string into dst and
// returns the number of bytes written. dst must hold Len bytes.
func (s *String) WriteToFlatLatin1(dst []byte) int {
	if debugChecks {
		debugAssert(s.compressed, "WriteToFlatLatin1 on wide string")
	}
	w := 0
	it := s.leaves(0, int(s.length))
	defer it.release()
	for it.Next() {
		v := it.View()
		if v.Compressed() {
			w += copy(dst[w:], v.Latin1())
		} else {
			encoding.Narrow(dst[w:], v.UTF16())
			w += v.Len()
		}
	}
	return w
}

// CopyRange copies units [start, start+length) of s into dst, widening
// compressed data, and returns the number of units written.
func (s *String) CopyRange(dst []uint16, start, length int) int {
	if start < 0 || length < 0 || start+length > int(s.length) {
		panic(fmt.Sprintf("ecmastring: range [%d:%d] out of bounds [0:%d]", start, start+length, s.length))
	}
	w := 0
	it := s.leaves(start, length)
	defer it.release()
	for it.Next() {
		v := it.View()
		if v.Compressed() {
			encoding.Widen(dst[w:], v.Latin1())
		} else {
			copy(dst[w:], v.UTF16())
		}
		w += v.Len()
	}
	return w
}

// ToUTF16 returns a copy of the units of s.
func (s *String) ToUTF16() []uint16 {
	out := make([]uint16, s.length)
	s.WriteToFlat(out)
	return out
}

// AppendUTF8 appends the UTF-8 form of s to dst. Lone surrogates become
// U+FFFD.
func (s *String) AppendUTF8(dst []byte) []byte {
	if !s.compressed {
		return encoding.AppendUTF8(dst, s.ToUTF16())
	}
	it := s.leaves(0, int(s.length))
	defer it.release()
	for it.Next() {
		dst = encoding.AppendLatin1UTF8(dst, it.View().Latin1())
	}
	return dst
}

// String returns s as a Go string.
func (s *String) String() string {
	if s.length == 0 {
		return ""
	}
	return string(s.AppendUTF8(make([]byte, 0, s.length)))
}
