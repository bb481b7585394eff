// Package heap provides the allocation and write-barrier capabilities the
// string subsystem is built on.
//
// The string core never allocates character storage itself. It asks an
// Allocator for a block tagged with the object Kind and the target Space,
// and it reports every stored child reference (a sliced string's parent, a
// tree string's halves) to a WriteBarrier so a host collector can trace the
// object graph.
//
// # Arena
//
// Arena is the reference Allocator. It carves 8-byte aligned blocks out of
// fixed-size pages, keeps per-space and per-kind accounting, enforces an
// optional byte limit, and recycles tails released by trimmed line strings:
//
//	a := heap.NewArena(heap.WithPageSize(64<<10), heap.WithMaxBytes(1<<30))
//	buf, err := a.Allocate(64, heap.LineString, heap.Regular)
//	...
//	a.Free(buf[40:], heap.Regular) // give back an unused tail
//
// Arena is safe for concurrent use; strings placed in OldShared may be
// created by several engine contexts at once.
//
// # Write barrier
//
// Go already traces ordinary pointers, so the barrier exists for hosts that
// keep their own remembered sets or snapshots. NopBarrier discards records and
// RecordingBarrier keeps them for inspection.
package heap
