package heap

// Alignment is the byte alignment of every block handed out by an Allocator.
// Line strings reinterpret two-byte storage in place, so blocks must be at
// least 2-byte aligned; 8 keeps word-at-a-time scans aligned too.
const Alignment = 8

// Allocator hands out storage for string objects.
//
// Allocate returns a zeroed block of exactly size bytes whose first byte is
// Alignment-aligned. A size of zero is legal and is used for header-only
// objects (sliced and tree strings) so the allocator can account for them.
//
// Free returns an unused tail of a previously allocated block to the
// allocator. Implementations may drop tails that are too small to reuse.
type Allocator interface {
	Allocate(size int, kind Kind, space Space) ([]byte, error)
	Free(tail []byte, space Space)
}

// AlignUp rounds n up to the next multiple of Alignment.
func AlignUp(n int) int {
	return (n + Alignment - 1) &^ (Alignment - 1)
}
