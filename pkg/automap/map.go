// Package automap implements an auto-incremented integer-valued mapping:
// given a sequence of hashable keys, it assigns each distinct key a
// zero-based, monotonically increasing integer position, preserves
// insertion order, forbids duplicates, and offers a typed-array fast path
// for bulk construction from primitive buffers.
//
// © 2025 automap authors. MIT License.
package automap

import (
	"iter"

	"github.com/arnovian/automap/internal/genericpath"
	"github.com/arnovian/automap/internal/hashpolicy"
	"github.com/arnovian/automap/internal/keystore"
	"github.com/arnovian/automap/internal/rawtable"
	"github.com/arnovian/automap/internal/typedarray"
)

// automap is the read-only contract shared by Map and FrozenMap (spec.md
// §4.F table of operations).
type automap interface {
	Len() int
	Get(key any) (pos int, ok bool)
	GetDefault(key any, dflt int) int
	Contains(key any) bool
	Keys() iter.Seq[any]
	KeysReversed() iter.Seq[any]
	Values() iter.Seq[int]
	Items() iter.Seq2[any, int]
	Equal(other automap) bool
}

// core holds the table and key store shared by both facades. It is never
// exposed directly; Map and FrozenMap each embed one.
type core struct {
	table    *rawtable.Table
	store    keystore.KeyStore
	category hashpolicy.Category
	cfg      *config
}

func (c *core) Len() int { return c.table.Len() }

// Get returns key's position. A key the generic-object policy cannot hash
// (an incomparable value such as a slice) reports ok=false instead of
// panicking.
func (c *core) Get(key any) (pos int, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, unhashable := r.(*hashpolicy.ErrUnhashable); !unhashable {
				panic(r)
			}
			pos, ok = 0, false
		}
	}()
	pos, ok = c.table.LookupBoxed(key)
	c.cfg.metrics.incLookup(ok)
	return pos, ok
}

func (c *core) GetDefault(key any, dflt int) int {
	if pos, ok := c.Get(key); ok {
		return pos
	}
	return dflt
}

func (c *core) Contains(key any) bool {
	_, ok := c.Get(key)
	return ok
}

// MustGet is Get's index-style counterpart: it returns ErrKeyMissing
// instead of ok=false (SPEC_FULL.md §12).
func (c *core) MustGet(key any) (int, error) {
	pos, ok := c.Get(key)
	if !ok {
		return 0, ErrKeyMissing
	}
	return pos, nil
}

// KeyAt returns the key stored at position pos, the inverse of Get. ok is
// false if pos is out of range.
func (c *core) KeyAt(pos int) (key any, ok bool) {
	if pos < 0 || pos >= c.store.Len() {
		return nil, false
	}
	return c.store.Boxed(pos), true
}

func (c *core) Keys() iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := 0; i < c.store.Len(); i++ {
			if !yield(c.store.Boxed(i)) {
				return
			}
		}
	}
}

func (c *core) KeysReversed() iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := c.store.Len() - 1; i >= 0; i-- {
			if !yield(c.store.Boxed(i)) {
				return
			}
		}
	}
}

func (c *core) Values() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.store.Len(); i++ {
			if !yield(i) {
				return
			}
		}
	}
}

func (c *core) Items() iter.Seq2[any, int] {
	return func(yield func(any, int) bool) {
		for i := 0; i < c.store.Len(); i++ {
			if !yield(c.store.Boxed(i), i) {
				return
			}
		}
	}
}

// Equal reports whether other has the same ordered key sequence under host
// equality (spec.md §4.F). Categories need not match: a map of one numeric
// category can be Equal to a map of another (or to a generic-category map
// holding plain ints), as long as every key compares equal under
// cross-representation numeric equality (spec.md §4.F, testable property 7).
func (c *core) Equal(other automap) bool {
	if other == nil {
		return false
	}
	if c.Len() != other.Len() {
		return false
	}
	i := 0
	for k := range other.Keys() {
		mine := c.store.Boxed(i)
		if !boxedEqual(mine, k) {
			return false
		}
		i++
	}
	return true
}

func boxedEqual(a, b any) bool {
	return hashpolicy.BoxedEqual(a, b)
}

// Snapshot returns a point-in-time diagnostic view of the map, in the shape
// automap-inspect reads from a host's /debug/automap/snapshot endpoint.
// This module itself serves no HTTP endpoint.
func (c *core) Snapshot() map[string]any {
	cap := c.table.Cap()
	load := 0.0
	if cap > 0 {
		load = float64(c.Len()) / float64(cap)
	}
	buildPath := "typedarray"
	if c.category == hashpolicy.Generic {
		buildPath = "generic"
	}
	return map[string]any{
		"len":         c.Len(),
		"category":    c.category.String(),
		"capacity":    cap,
		"load_factor": load,
		"growths":     c.table.Growths(),
		"build_path":  buildPath,
	}
}

// buildGeneric runs the generic construction path over seq and returns a
// populated core, translating any internal error to a public sentinel.
func buildGeneric(cfg *config, seq iter.Seq[any]) (*core, error) {
	built, err := genericpath.Build(seq)
	if err != nil {
		if errorsIsDuplicate(err) {
			cfg.metrics.incBuildDuplicate()
		}
		return nil, translateConstructionError(err)
	}
	for i := 0; i < built.Table.Growths(); i++ {
		cfg.metrics.incTableGrowth()
	}
	cfg.metrics.incBuild("generic")
	cfg.logger.Debug("automap: built generic map", zapLenField(built.Store.Len()))
	return &core{table: built.Table, store: built.Store, category: hashpolicy.Generic, cfg: cfg}, nil
}

// buildTypedArray runs the typed-array fast path over arr. rowWidth is
// only meaningful for Bytes/Unicode categories (see typedarray.Build).
func buildTypedArray(cfg *config, arr typedarray.Array, rowWidth int) (*core, error) {
	built, err := typedarray.Build(arr, rowWidth)
	if err != nil {
		if err == typedarray.ErrUnsupportedArray {
			cfg.logger.Warn("automap: typed-array fast path rejected buffer", zapCategoryField(arr.Category))
		} else if err == typedarray.ErrNonUnique {
			cfg.metrics.incBuildDuplicate()
		}
		return nil, translateConstructionError(err)
	}
	cfg.metrics.incBuild("typedarray")
	cfg.logger.Debug("automap: built typed-array map", zapLenField(built.Store.Len()))
	return &core{table: built.Table, store: built.Store, category: built.Category, cfg: cfg}, nil
}
