package ecmastring

import (
	"fmt"

	"github.com/dshills/ecmastr/internal/heap"
)

// leafFrame is a pending range [start, start+length) of node.
type leafFrame struct {
	node   *String
	start  int
	length int
}

// LeafIterator visits, in order, the flat pieces covering a range of a
// string. Each piece is a FlatView into a line string.
type LeafIterator struct {
	stack *[]leafFrame
	view  FlatView
}

// Leaves returns an iterator over the flat pieces of s.
func (s *String) Leaves() *LeafIterator {
	return s.leaves(0, int(s.length))
}

// LeavesRange returns an iterator over the flat pieces covering units
// [start, start+length) of s.
func (s *String) LeavesRange(start, length int) *LeafIterator {
	if start < 0 || length < 0 || start+length > int(s.length) {
		panic(fmt.Sprintf("ecmastring: range [%d:%d] out of bounds [0:%d]", start, start+length, s.length))
	}
	return s.leaves(start, length)
}

func (s *String) leaves(start, length int) *LeafIterator {
	it := &LeafIterator{stack: getFrameStack()}
	if length > 0 {
		*it.stack = append(*it.stack, leafFrame{node: s, start: start, length: length})
	}
	return it
}

// Next advances to the next piece. It returns false when iteration is
// complete, after which the iterator's buffers are released.
func (it *LeafIterator) Next() bool {
	if it.stack == nil {
		return false
	}
	stack := *it.stack
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := fr.node

		switch n.kind {
		case heap.LineString:
			it.view = FlatView{src: n, start: fr.start, length: fr.length}
			*it.stack = stack
			return true

		case heap.SlicedString:
			it.view = FlatView{src: n.parent, start: int(n.start) + fr.start, length: fr.length}
			*it.stack = stack
			return true

		case heap.TreeString:
			f, sec := n.children()
			fl := int(f.length)
			end := fr.start + fr.length
			switch {
			case end <= fl:
				stack = append(stack, leafFrame{node: f, start: fr.start, length: fr.length})
			case fr.start >= fl:
				stack = append(stack, leafFrame{node: sec, start: fr.start - fl, length: fr.length})
			default:
				// Second half is pushed first so the first half pops first.
				stack = append(stack,
					leafFrame{node: sec, start: 0, length: end - fl},
					leafFrame{node: f, start: fr.start, length: fl - fr.start})
			}

		default:
			panic(fmt.Sprintf("ecmastring: unknown kind %d", n.kind))
		}
	}
	*it.stack = stack
	it.release()
	return false
}

// View returns the current piece.
func (it *LeafIterator) View() FlatView {
	return it.view
}

// release returns the iterator's stack to the pool. Safe to call twice.
func (it *LeafIterator) release() {
	if it.stack != nil {
		putFrameStack(it.stack)
		it.stack = nil
	}
}
