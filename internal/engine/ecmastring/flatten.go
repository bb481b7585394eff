package ecmastring

import (
	"fmt"

	"github.com/dshills/ecmastr/internal/engine/encoding"
	"github.com/dshills/ecmastr/internal/heap"
)

var (
	isASCII8  = encoding.IsASCII
	isASCII16 = encoding.IsASCII16
)

// Flatten returns a view over directly addressable units of s. Line and
// sliced strings are viewed in place. A tree is materialized into a new line
// string once; the copy is cached on the tree.
func (f *Factory) Flatten(s *String) (FlatView, error) {
	switch s.kind {
	case heap.LineString:
		return FlatView{src: s, length: int(s.length)}, nil

	case heap.SlicedString:
		return FlatView{src: s.parent, start: int(s.start), length: int(s.length)}, nil

	case heap.TreeString:
		if flat := s.flattenedTree(); flat != nil {
			return f.Flatten(flat)
		}
		line, err := f.allocLine(int(s.length), s.compressed)
		if err != nil {
			return FlatView{}, err
		}
		writeRange(line, 0, s, 0, int(s.length))

		// First before second; see children.
		s.first.Store(line)
		f.barrier.RecordReference(s, heap.FieldFirst, line)
		s.second.Store(empty)
		f.barrier.RecordReference(s, heap.FieldSecond, empty)
		line.markShared()

		return FlatView{src: line, length: int(line.length)}, nil

	default:
		panic(fmt.Sprintf("ecmastring: unknown kind %d", s.kind))
	}
}

// FlattenString returns s itself when it owns its data, the parent-backed
// slice as is, or the cached flat copy of a tree.
func (f *Factory) FlattenString(s *String) (*String, error) {
	if s.kind != heap.TreeString {
		return s, nil
	}
	v, err := f.Flatten(s)
	if err != nil {
		return nil, err
	}
	return v.src, nil
}

// SubStringFlat returns a view over units [start, start+length) of s. For a
// tree it descends to the half holding the range and only copies when the
// range straddles both halves; that copy is not cached.
func (f *Factory) SubStringFlat(s *String, start, length int) (FlatView, error) {
	v, _, err := f.subStringFlat(s, start, length)
	return v, err
}

// subStringFlat is SubStringFlat that also reports whether the view is over
// a private copy.
func (f *Factory) subStringFlat(s *String, start, length int) (FlatView, bool, error) {
	if start < 0 || length < 0 || start+length > int(s.length) {
		return FlatView{}, false, fmt.Errorf("%w: [%d:%d] of length %d", ErrOutOfRange, start, start+length, s.length)
	}
	n := s
	for {
		switch n.kind {
		case heap.LineString:
			return FlatView{src: n, start: start, length: length}, false, nil

		case heap.SlicedString:
			return FlatView{src: n.parent, start: int(n.start) + start, length: length}, false, nil

		case heap.TreeString:
			first, second := n.children()
			fl := int(first.length)
			switch {
			case start+length <= fl:
				n = first
				continue
			case start >= fl:
				n = second
				start -= fl
				continue
			}
			if length == int(n.length) {
				v, err := f.Flatten(n)
				return v, false, err
			}
			line, err := f.allocLine(length, n.compressed)
			if err != nil {
				return FlatView{}, false, err
			}
			writeRange(line, 0, n, start, length)
			return FlatView{src: line, length: length}, true, nil

		default:
			panic(fmt.Sprintf("ecmastring: unknown kind %d", n.kind))
		}
	}
}

// writeRange copies units [start, start+length) of src into line at offset
// at. A compressed line only receives units that fit, and narrowing is used
// when src pieces are wide.
func writeRange(line *String, at int, src *String, start, length int) {
	it := src.leaves(start, length)
	defer it.release()
	for it.Next() {
		v := it.View()
		switch {
		case line.compressed && v.Compressed():
			copy(line.data[at:], v.Latin1())
		case line.compressed:
			encoding.Narrow(line.data[at:], v.UTF16())
		case v.Compressed():
			encoding.Widen(wideView(line.data)[at:], v.Latin1())
		default:
			copy(wideView(line.data)[at:], v.UTF16())
		}
		at += v.Len()
	}
}
