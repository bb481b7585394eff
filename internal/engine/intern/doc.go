// Package intern maps string content to one canonical String.
//
// A Table buckets strings by their cached hash and resolves collisions with
// ecmastring.Equals. The first string inserted for a given content becomes
// canonical and has its interned flag set; later lookups for equal content
// return that string. Tree strings are flattened before insertion so that
// canonical strings always have directly addressable units.
//
// Tables are safe for concurrent use. Lookups take a read lock; insertion
// re-checks under the write lock.
package intern
