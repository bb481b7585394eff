package ecmastring

import (
	"fmt"
	"unsafe"

	"github.com/dshills/ecmastr/internal/engine/encoding"
	"github.com/dshills/ecmastr/internal/heap"
)

// Factory constructs strings against one allocator, barrier and space.
// A Factory is safe for concurrent use if its allocator and barrier are.
type Factory struct {
	alloc   heap.Allocator
	barrier heap.WriteBarrier
	space   heap.Space

	maxLength       int
	minTreeLength   int
	minSlicedLength int
}

// NewFactory creates a factory. Without options it uses a fresh heap.Arena,
// a no-op barrier and the regular space.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		barrier:         heap.NopBarrier{},
		space:           heap.Regular,
		maxLength:       MaxLength,
		minTreeLength:   DefaultMinTreeLength,
		minSlicedLength: DefaultMinSlicedLength,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.alloc == nil {
		f.alloc = heap.NewArena()
	}
	return f
}

// MaxLength returns the factory's length limit.
func (f *Factory) MaxLength() int {
	return f.maxLength
}

// Space returns the heap space new strings are placed in.
func (f *Factory) Space() heap.Space {
	return f.space
}

func (f *Factory) checkLength(n int) error {
	if n < 0 || n > f.maxLength {
		return fmt.Errorf("%w: %d exceeds %d", ErrLengthOverflow, n, f.maxLength)
	}
	return nil
}

// allocLine allocates a zeroed line string of length units.
func (f *Factory) allocLine(length int, compressed bool) (*String, error) {
	if err := f.checkLength(length); err != nil {
		return nil, err
	}
	size := length
	if !compressed {
		size *= 2
	}
	data, err := f.alloc.Allocate(size, heap.LineString, f.space)
	if err != nil {
		return nil, fmt.Errorf("line string of %d units: %w", length, err)
	}
	return &String{
		kind:       heap.LineString,
		space:      f.space,
		compressed: compressed,
		length:     uint32(length),
		data:       data,
	}, nil
}

// NewLine allocates a line string of length zero-valued units for the caller
// to fill through Latin1 or UTF16 before it escapes.
func (f *Factory) NewLine(length int, compressed bool) (*String, error) {
	if length == 0 {
		return empty, nil
	}
	return f.allocLine(length, compressed)
}

// FromUTF8 decodes UTF-8 (including its modified form, see package
// encoding). Compressible input gets an exact-size compressed line; other
// input is decoded into a wide line sized by the byte count, then trimmed.
func (f *Factory) FromUTF8(b []byte) (*String, error) {
	if len(b) == 0 {
		return empty, nil
	}

	if encoding.IsASCII(b) {
		s, err := f.allocLine(len(b), true)
		if err != nil {
			return nil, err
		}
		copy(s.data, b)
		return s, nil
	}

	if encoding.CanCompressUTF8(b) {
		s, err := f.allocLine(encoding.UTF16Length(b), true)
		if err != nil {
			return nil, err
		}
		encoding.DecodeLatin1(s.data, b)
		return s, nil
	}

	capacity := len(b)
	if capacity > f.maxLength {
		// Only an exact count can tell whether the result fits.
		capacity = encoding.UTF16Length(b)
	}
	s, err := f.allocLine(capacity, false)
	if err != nil {
		return nil, err
	}
	n := encoding.DecodeUTF16(wideView(s.data), b)
	return f.TrimLine(s, n), nil
}

// FromString is FromUTF8 over the bytes of a Go string.
func (f *Factory) FromString(str string) (*String, error) {
	return f.FromUTF8(unsafe.Slice(unsafe.StringData(str), len(str)))
}

// FromUTF16 copies UTF-16 units, compressing them when every unit fits a
// byte.
func (f *Factory) FromUTF16(u []uint16) (*String, error) {
	if len(u) == 0 {
		return empty, nil
	}
	compressed := encoding.CanCompressUTF16(u)
	s, err := f.allocLine(len(u), compressed)
	if err != nil {
		return nil, err
	}
	if compressed {
		encoding.Narrow(s.data, u)
	} else {
		copy(wideView(s.data), u)
	}
	return s, nil
}

// FromLatin1 copies Latin-1 bytes into a compressed line.
func (f *Factory) FromLatin1(b []byte) (*String, error) {
	if len(b) == 0 {
		return empty, nil
	}
	s, err := f.allocLine(len(b), encoding.CanCompressLatin1(b))
	if err != nil {
		return nil, err
	}
	copy(s.data, b)
	return s, nil
}

// TrimLine shrinks a freshly allocated line string to newLength units and
// hands the unused tail back to the allocator. It must be called before s
// escapes, and callers continue with the returned string: trimming to zero
// releases the whole buffer and yields the empty singleton. Trimming to the
// current length returns s unchanged.
func (f *Factory) TrimLine(s *String, newLength int) *String {
	if debugChecks {
		debugAssert(s.kind == heap.LineString, "TrimLine on %s", s.kind)
		debugAssert(s != empty && !s.isShared(), "TrimLine on a shared string")
		debugAssert(newLength >= 0 && newLength <= int(s.length), "TrimLine to %d of %d", newLength, s.length)
	}

	if newLength == int(s.length) {
		return s
	}
	width := 1
	if !s.compressed {
		width = 2
	}
	keep := newLength * width
	f.alloc.Free(s.data[keep:], s.space)
	if newLength == 0 {
		s.data = nil
		s.length = 0
		return empty
	}
	s.data = s.data[:keep:keep]
	s.length = uint32(newLength)
	return s
}

// NewSliced returns a window of length units starting at start into the
// line string parent. The whole range returns parent itself.
func (f *Factory) NewSliced(parent *String, start, length int) (*String, error) {
	if debugChecks {
		debugAssert(parent.kind == heap.LineString, "NewSliced parent is %s", parent.kind)
	}
	if start < 0 || length < 0 || start+length > int(parent.length) {
		return nil, fmt.Errorf("%w: [%d:%d] of length %d", ErrOutOfRange, start, start+length, parent.length)
	}
	if length == 0 {
		return empty, nil
	}
	if start == 0 && length == int(parent.length) {
		return parent, nil
	}
	if _, err := f.alloc.Allocate(0, heap.SlicedString, f.space); err != nil {
		return nil, fmt.Errorf("sliced string: %w", err)
	}
	s := &String{
		kind:       heap.SlicedString,
		space:      f.space,
		compressed: parent.compressed,
		length:     uint32(length),
		parent:     parent,
		start:      uint32(start),
	}
	f.barrier.RecordReference(s, heap.FieldParent, parent)
	parent.markShared()
	return s, nil
}

// NewTree returns a concatenation node of left and right in O(1). length
// must equal the sum of the halves and compressed must be set only if both
// halves are compressed; otherwise it returns ErrMalformedTree.
func (f *Factory) NewTree(left, right *String, length int, compressed bool) (*String, error) {
	if length != left.Len()+right.Len() {
		return nil, fmt.Errorf("%w: length %d != %d+%d", ErrMalformedTree, length, left.length, right.length)
	}
	if compressed && !(left.compressed && right.compressed) {
		return nil, fmt.Errorf("%w: compressed over a wide half", ErrMalformedTree)
	}
	if err := f.checkLength(length); err != nil {
		return nil, err
	}
	if _, err := f.alloc.Allocate(0, heap.TreeString, f.space); err != nil {
		return nil, fmt.Errorf("tree string: %w", err)
	}
	s := &String{
		kind:       heap.TreeString,
		space:      f.space,
		compressed: compressed,
		length:     uint32(length),
	}
	s.first.Store(left)
	f.barrier.RecordReference(s, heap.FieldFirst, left)
	s.second.Store(right)
	f.barrier.RecordReference(s, heap.FieldSecond, right)
	left.markShared()
	right.markShared()
	return s, nil
}

// Concat joins a and b. Empty operands return the other operand, short
// results are copied into a line string, and longer ones become a tree.
func (f *Factory) Concat(a, b *String) (*String, error) {
	if a.length == 0 {
		return b, nil
	}
	if b.length == 0 {
		return a, nil
	}
	length := a.Len() + b.Len()
	if err := f.checkLength(length); err != nil {
		return nil, err
	}
	compressed := a.compressed && b.compressed
	if length >= f.minTreeLength {
		return f.NewTree(a, b, length, compressed)
	}
	line, err := f.allocLine(length, compressed)
	if err != nil {
		return nil, err
	}
	writeRange(line, 0, a, 0, a.Len())
	writeRange(line, a.Len(), b, 0, b.Len())
	return line, nil
}

// SubStringFast copies units [start, start+length) of src into a new line
// string. The copy is compressed whenever its own units allow it, whatever
// the encoding of src.
func (f *Factory) SubStringFast(src *String, start, length int) (*String, error) {
	if length == 0 {
		if start < 0 || start > src.Len() {
			return nil, fmt.Errorf("%w: [%d:%d] of length %d", ErrOutOfRange, start, start, src.length)
		}
		return empty, nil
	}
	v, err := f.SubStringFlat(src, start, length)
	if err != nil {
		return nil, err
	}
	compressed := v.Compressed() || encoding.CanCompressUTF16(v.UTF16())
	line, err := f.allocLine(length, compressed)
	if err != nil {
		return nil, err
	}
	switch {
	case v.Compressed():
		copy(line.data, v.Latin1())
	case compressed:
		encoding.Narrow(line.data, v.UTF16())
	default:
		copy(wideView(line.data), v.UTF16())
	}
	return line, nil
}

// SubString returns units [start, start+length) of src. The whole range is
// src itself. Ranges of at least the slice threshold become a slice of the
// flat source, unless the source is wide and the range would compress;
// everything else is copied by SubStringFast. Slices never chain.
func (f *Factory) SubString(src *String, start, length int) (*String, error) {
	if start < 0 || length < 0 || start+length > src.Len() {
		return nil, fmt.Errorf("%w: [%d:%d] of length %d", ErrOutOfRange, start, start+length, src.length)
	}
	if length == 0 {
		return empty, nil
	}
	if start == 0 && length == src.Len() {
		return src, nil
	}
	if length < f.minSlicedLength {
		return f.SubStringFast(src, start, length)
	}

	v, copied, err := f.subStringFlat(src, start, length)
	if err != nil {
		return nil, err
	}
	if !v.Compressed() && encoding.CanCompressUTF16(v.UTF16()) {
		return f.SubStringFast(src, start, length)
	}
	if copied {
		// The range straddled tree halves; v covers a private line.
		return v.src, nil
	}
	return f.NewSliced(v.src, v.start, v.length)
}
