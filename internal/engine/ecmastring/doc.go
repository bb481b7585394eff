// Package ecmastring implements immutable engine string values.
//
// A String is one of three variants, selected by its heap.Kind tag:
//
//   - LineString: owns a contiguous buffer of code units
//   - SlicedString: a window (start, length) into a LineString parent
//   - TreeString: a lazy concatenation of two arbitrary strings
//
// Independently of the variant, a string is either compressed (one byte per
// code unit, every unit at most 0xFF) or wide (UTF-16, two bytes per unit).
// The encoding is decided once at construction and never re-derived.
//
// # Construction
//
// All construction goes through a Factory, which carries the heap.Allocator,
// the heap.WriteBarrier, the target heap.Space and the length limits:
//
//	f := ecmastring.NewFactory(ecmastring.WithAllocator(arena))
//	a, _ := f.FromUTF8([]byte("aa"))
//	b, _ := f.FromUTF8([]byte("baac"))
//	s, _ := f.Concat(a, b) // short results are copied into a LineString
//
// # Flattening
//
// Flatten returns a FlatView over directly addressable units. Line and sliced
// strings are viewed in place. A tree is materialized once into a new line
// string, which is then stored back into the tree as its first half with the
// empty string as its second half, so later views are O(1). The tree's
// length, encoding and content are unchanged by this.
//
// # Hashing
//
// Hash is the polynomial h = h*31 + unit over all code units. It depends only
// on content, so every variant with equal units hashes equally. The value is
// cached in an atomic cell whose validity is tracked separately from the
// value, so zero is a legal hash.
//
// # Thread Safety
//
// Strings are immutable once returned to a caller. The only fields written
// after construction are the hash cache and a tree's halves during cached
// flattening; both are written atomically with values that are equal no
// matter which writer wins. TrimLine is only legal before a string escapes.
package ecmastring
