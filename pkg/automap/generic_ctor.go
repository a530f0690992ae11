package automap

// generic_ctor.go layers a Go-generic convenience API on top of the
// any-based core, for callers who know their key type statically — the
// same layering the teacher applies with Cache[K, V] on top of its
// internal shard machinery (pkg/cache.go).
//
// © 2025 automap authors. MIT License.

import "iter"

// TypedMap is a statically-typed view over a *Map restricted to key type
// T. It does not duplicate storage: every method boxes/unboxes through
// the same any-based core that the typed-array fast path and the
// generic-object category both feed (SPEC_FULL.md §9).
type TypedMap[T comparable] struct {
	m *Map
}

// NewTypedFromSlice constructs a mutable map from a statically-typed
// slice, failing on the first duplicate.
func NewTypedFromSlice[T comparable](keys []T, opts ...Option) (*TypedMap[T], error) {
	boxed := make([]any, len(keys))
	for i, k := range keys {
		boxed[i] = k
	}
	m, err := NewFromIter(func(yield func(any) bool) {
		for _, k := range boxed {
			if !yield(k) {
				return
			}
		}
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &TypedMap[T]{m: m}, nil
}

// Len returns the number of distinct keys.
func (t *TypedMap[T]) Len() int { return t.m.Len() }

// Get returns key's position.
func (t *TypedMap[T]) Get(key T) (pos int, ok bool) { return t.m.Get(key) }

// Contains reports whether key is present.
func (t *TypedMap[T]) Contains(key T) bool { return t.m.Contains(key) }

// Add inserts key, returning ErrDuplicateKey if already present.
func (t *TypedMap[T]) Add(key T) (int, error) { return t.m.Add(key) }

// Keys iterates keys in insertion order, unboxed to T.
func (t *TypedMap[T]) Keys() iter.Seq[T] {
	return func(yield func(T) bool) {
		for k := range t.m.Keys() {
			if !yield(k.(T)) {
				return
			}
		}
	}
}

// Untyped returns the underlying any-based Map, e.g. to call Extend/Or
// against a differently-typed TypedMap.
func (t *TypedMap[T]) Untyped() *Map { return t.m }
