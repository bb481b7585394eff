package heap

import (
	"errors"
	"sync"
	"testing"
	"unsafe"
)

func isAligned(b []byte) bool {
	if cap(b) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))%Alignment == 0
}

func TestArenaAllocate(t *testing.T) {
	a := NewArena(WithPageSize(256))

	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"one", 1},
		{"word", 8},
		{"odd", 13},
		{"half page", 128},
		{"dedicated", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := a.Allocate(tt.size, LineString, Regular)
			if err != nil {
				t.Fatalf("Allocate(%d) error: %v", tt.size, err)
			}
			if len(buf) != tt.size {
				t.Errorf("len = %d, want %d", len(buf), tt.size)
			}
			if cap(buf) != AlignUp(tt.size) {
				t.Errorf("cap = %d, want %d", cap(buf), AlignUp(tt.size))
			}
			if !isAligned(buf) {
				t.Error("block not aligned")
			}
			for i, b := range buf {
				if b != 0 {
					t.Fatalf("byte %d = %d, want 0", i, b)
				}
			}
		})
	}
}

func TestArenaBlocksDoNotOverlap(t *testing.T) {
	a := NewArena(WithPageSize(128))
	var blocks [][]byte
	for i := 0; i < 20; i++ {
		buf, err := a.Allocate(10, LineString, Regular)
		if err != nil {
			t.Fatal(err)
		}
		for j := range buf {
			buf[j] = byte(i)
		}
		blocks = append(blocks, buf)
	}
	for i, buf := range blocks {
		for j, b := range buf {
			if b != byte(i) {
				t.Fatalf("block %d byte %d = %d, want %d", i, j, b, i)
			}
		}
	}
}

func TestArenaInvalidSize(t *testing.T) {
	a := NewArena()
	if _, err := a.Allocate(-1, LineString, Regular); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("err = %v, want ErrInvalidSize", err)
	}
}

func TestArenaMaxBytes(t *testing.T) {
	a := NewArena(WithMaxBytes(64))

	if _, err := a.Allocate(48, LineString, Regular); err != nil {
		t.Fatalf("first allocation: %v", err)
	}
	_, err := a.Allocate(24, LineString, Regular)
	if !errors.Is(err, ErrAllocationFailure) {
		t.Fatalf("err = %v, want ErrAllocationFailure", err)
	}
	if _, err := a.Allocate(16, LineString, Regular); err != nil {
		t.Errorf("allocation within limit failed: %v", err)
	}
}

func TestArenaFreeReusesTail(t *testing.T) {
	a := NewArena()

	buf, err := a.Allocate(64, LineString, Regular)
	if err != nil {
		t.Fatal(err)
	}
	a.Free(buf[20:], Regular)

	st := a.Stats()
	// Tail starts at 20, aligned up to 24, leaving 40 reusable bytes.
	if st.FreedBytes != 40 {
		t.Errorf("FreedBytes = %d, want 40", st.FreedBytes)
	}
	if st.LiveBytes != 24 {
		t.Errorf("LiveBytes = %d, want 24", st.LiveBytes)
	}

	buf[19] = 0xAB
	reused, err := a.Allocate(16, LineString, Regular)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Stats().ReusedBytes; got != 16 {
		t.Errorf("ReusedBytes = %d, want 16", got)
	}
	if unsafe.SliceData(reused) != &buf[24] {
		t.Error("reused block does not come from the freed tail")
	}
	if buf[19] != 0xAB {
		t.Error("reuse clobbered the retained prefix")
	}
}

func TestArenaFreeDropsSmallTail(t *testing.T) {
	a := NewArena()
	buf, err := a.Allocate(8, LineString, Regular)
	if err != nil {
		t.Fatal(err)
	}
	a.Free(buf[5:], Regular)
	if st := a.Stats(); st.FreedBytes != 0 {
		t.Errorf("FreedBytes = %d, want 0", st.FreedBytes)
	}
}

func TestArenaFreeListsArePerSpace(t *testing.T) {
	a := NewArena()
	buf, _ := a.Allocate(64, LineString, OldShared)
	a.Free(buf[32:], OldShared)

	if _, err := a.Allocate(16, LineString, Regular); err != nil {
		t.Fatal(err)
	}
	if got := a.Stats().ReusedBytes; got != 0 {
		t.Errorf("regular allocation reused an old-shared block")
	}
	if _, err := a.Allocate(16, LineString, OldShared); err != nil {
		t.Fatal(err)
	}
	if got := a.Stats().ReusedBytes; got != 16 {
		t.Errorf("ReusedBytes = %d, want 16", got)
	}
}

func TestArenaStats(t *testing.T) {
	a := NewArena()
	a.Allocate(10, LineString, Regular)
	a.Allocate(0, SlicedString, Regular)
	a.Allocate(0, TreeString, OldShared)
	a.Allocate(0, TreeString, OldShared)

	st := a.Stats()
	if st.Objects(LineString) != 1 || st.Objects(SlicedString) != 1 || st.Objects(TreeString) != 2 {
		t.Errorf("object counts = %d/%d/%d", st.Objects(LineString), st.Objects(SlicedString), st.Objects(TreeString))
	}
	if st.SpaceBytes(Regular) != 16 {
		t.Errorf("SpaceBytes(Regular) = %d, want 16", st.SpaceBytes(Regular))
	}
	if st.SpaceBytes(OldShared) != 0 {
		t.Errorf("SpaceBytes(OldShared) = %d, want 0", st.SpaceBytes(OldShared))
	}
}

func TestArenaSeal(t *testing.T) {
	a := NewArena()
	if _, err := a.Allocate(8, LineString, ReadOnly); err != nil {
		t.Fatal(err)
	}
	a.Seal()
	if _, err := a.Allocate(8, LineString, ReadOnly); !errors.Is(err, ErrReadOnlySpace) {
		t.Errorf("err = %v, want ErrReadOnlySpace", err)
	}
	if _, err := a.Allocate(8, LineString, Regular); err != nil {
		t.Errorf("regular allocation after seal: %v", err)
	}
}

func TestArenaConcurrent(t *testing.T) {
	a := NewArena(WithPageSize(512))
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				buf, err := a.Allocate(24, LineString, OldShared)
				if err != nil {
					t.Error(err)
					return
				}
				if i%3 == 0 {
					a.Free(buf[8:], OldShared)
				}
			}
		}(g)
	}
	wg.Wait()

	st := a.Stats()
	if st.Objects(LineString) != 1600 {
		t.Errorf("Objects = %d, want 1600", st.Objects(LineString))
	}
}

func TestParseSpace(t *testing.T) {
	for s := Regular; s < numSpaces; s++ {
		got, ok := ParseSpace(s.String())
		if !ok || got != s {
			t.Errorf("ParseSpace(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if _, ok := ParseSpace("nursery"); ok {
		t.Error("ParseSpace accepted unknown name")
	}
}
