// Package keystore implements the insertion-ordered, append-only key
// sequence described in spec.md §4.C: index i holds the i-th inserted
// key, reads are O(1), and the store supports forward/reverse iteration.
// Two implementations share the KeyStore interface: an owned store for
// the generic construction path, and a borrowed store that is a zero-copy
// view over a typed array's backing buffer (spec.md §4.E, invariant 6).
//
// © 2025 automap authors. MIT License.
package keystore

import "unsafe"

// KeyStore is the insertion-ordered sequence shared by every map variant.
// rawtable.Table never touches a KeyStore directly — it only calls the
// KeyAt closure a KeyStore exposes via Ptr.
type KeyStore interface {
	// Len returns the number of stored keys.
	Len() int

	// Ptr returns a pointer to the element at position i, suitable for a
	// hashpolicy.Policy's Hash/Equal. Valid only for i in [0, Len()).
	Ptr(i int) unsafe.Pointer

	// Boxed returns the key at position i as a host-facing any, used by
	// iteration (Keys/Items) and by serialization.
	Boxed(i int) any

	// Owned reports whether the store owns its backing memory (true) or
	// borrows it from an external, caller-kept-alive buffer (false).
	Owned() bool
}

// Appender is implemented by key stores that support incremental growth
// (the generic construction path and the mutable map's Add/Update). The
// borrowed typed-array store does not implement Appender: its contents
// are fixed for the lifetime of the map (spec.md §4.C).
type Appender interface {
	KeyStore
	// Append adds key to the end of the store and returns its new
	// position (== previous Len()).
	Append(key any) int
}
