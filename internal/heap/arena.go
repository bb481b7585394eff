package heap

import (
	"fmt"
	"sync"
	"unsafe"
)

const (
	// DefaultPageSize is the page size used when none is configured.
	DefaultPageSize = 64 << 10

	// maxFreeBlocks bounds each space's free list.
	maxFreeBlocks = 1024
)

// Stats is a snapshot of arena accounting.
type Stats struct {
	// LiveBytes is the number of bytes currently handed out.
	LiveBytes int64
	// AllocatedBytes is the total of all successful allocations.
	AllocatedBytes int64
	// FreedBytes is the total of tails returned through Free.
	FreedBytes int64
	// ReusedBytes is the total served from free lists.
	ReusedBytes int64
	// Pages is the number of pages and dedicated blocks obtained.
	Pages int

	objects    [numKinds]int64
	spaceBytes [numSpaces]int64
}

// Objects returns the number of objects of kind k allocated so far.
func (s Stats) Objects(k Kind) int64 {
	if k >= numKinds {
		return 0
	}
	return s.objects[k]
}

// SpaceBytes returns the live bytes held in space sp.
func (s Stats) SpaceBytes(sp Space) int64 {
	if sp >= numSpaces {
		return 0
	}
	return s.spaceBytes[sp]
}

type page struct {
	buf []byte
	off int
}

// Arena is a page-based Allocator with free-list reuse of released tails.
type Arena struct {
	mu sync.Mutex

	pageSize int
	maxBytes int64

	current [numSpaces]*page
	free    [numSpaces][][]byte
	sealed  bool

	stats Stats
}

// ArenaOption configures an Arena.
type ArenaOption func(*Arena)

// WithPageSize sets the page size. Requests larger than half a page get a
// dedicated block.
func WithPageSize(size int) ArenaOption {
	return func(a *Arena) {
		if size >= 4*Alignment {
			a.pageSize = AlignUp(size)
		}
	}
}

// WithMaxBytes limits the number of live bytes. Zero means unlimited.
func WithMaxBytes(n int64) ArenaOption {
	return func(a *Arena) {
		if n >= 0 {
			a.maxBytes = n
		}
	}
}

// NewArena creates an arena.
func NewArena(opts ...ArenaOption) *Arena {
	a := &Arena{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate implements Allocator.
func (a *Arena) Allocate(size int, kind Kind, space Space) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if space >= numSpaces {
		space = Regular
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if space == ReadOnly && a.sealed {
		return nil, ErrReadOnlySpace
	}

	n := AlignUp(size)
	if a.maxBytes > 0 && a.stats.LiveBytes+int64(n) > a.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes for %s in %s space (live %d, limit %d)",
			ErrAllocationFailure, size, kind, space, a.stats.LiveBytes, a.maxBytes)
	}

	if kind < numKinds {
		a.stats.objects[kind]++
	}
	if n == 0 {
		return []byte{}, nil
	}

	buf := a.takeFree(n, space)
	if buf == nil {
		buf = a.bump(n, space)
	}

	a.stats.LiveBytes += int64(n)
	a.stats.AllocatedBytes += int64(n)
	a.stats.spaceBytes[space] += int64(n)
	return buf[:size:n], nil
}

// Free implements Allocator. The tail is extended to its capacity, its start
// rounded up to Alignment and its length rounded down; what remains joins the
// space's free list.
func (a *Arena) Free(tail []byte, space Space) {
	if cap(tail) == 0 || space >= numSpaces {
		return
	}
	tail = tail[:cap(tail)]
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(tail)))
	skip := int((Alignment - addr%Alignment) % Alignment)
	if skip >= len(tail) {
		return
	}
	tail = tail[skip:]
	n := len(tail) &^ (Alignment - 1)
	if n == 0 {
		return
	}
	tail = tail[:n:n]

	a.mu.Lock()
	defer a.mu.Unlock()

	a.stats.LiveBytes -= int64(n)
	a.stats.FreedBytes += int64(n)
	a.stats.spaceBytes[space] -= int64(n)
	if len(a.free[space]) < maxFreeBlocks {
		a.free[space] = append(a.free[space], tail)
	}
}

// Seal forbids further allocation in the ReadOnly space.
func (a *Arena) Seal() {
	a.mu.Lock()
	a.sealed = true
	a.mu.Unlock()
}

// Stats returns a snapshot of the arena accounting.
func (a *Arena) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// takeFree serves n bytes from the space's free list using first fit.
// Caller must hold a.mu.
func (a *Arena) takeFree(n int, space Space) []byte {
	list := a.free[space]
	for i, blk := range list {
		if len(blk) < n {
			continue
		}
		rest := blk[n:]
		if len(rest) >= Alignment {
			list[i] = rest[:len(rest):len(rest)]
		} else {
			list[i] = list[len(list)-1]
			list[len(list)-1] = nil
			a.free[space] = list[:len(list)-1]
		}
		out := blk[:n:n]
		clear(out)
		a.stats.ReusedBytes += int64(n)
		return out
	}
	return nil
}

// bump carves n bytes from the current page of the space, starting a new
// page or a dedicated block when needed. Caller must hold a.mu.
func (a *Arena) bump(n int, space Space) []byte {
	if n > a.pageSize/2 {
		a.stats.Pages++
		return alignedBytes(n)
	}
	p := a.current[space]
	if p == nil || len(p.buf)-p.off < n {
		p = &page{buf: alignedBytes(a.pageSize)}
		a.current[space] = p
		a.stats.Pages++
	}
	out := p.buf[p.off : p.off+n : p.off+n]
	p.off += n
	return out
}

// alignedBytes returns n zeroed bytes backed by a []uint64 so the first byte
// is 8-byte aligned. n must be a multiple of 8.
func alignedBytes(n int) []byte {
	words := make([]uint64, n/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), n)
}

var _ Allocator = (*Arena)(nil)
