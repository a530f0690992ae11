package automap

// mutable.go implements Map, the incrementally-extensible facade (spec.md
// §4.F "Mutable map"). It is not safe for concurrent mutation (spec.md §1
// Non-goals): callers that need concurrent Add/Update must synchronize
// externally, same as the teacher's Cache requires external
// synchronization around anything outside its internal shard locks.
//
// © 2025 automap authors. MIT License.

import (
	"iter"

	"github.com/arnovian/automap/internal/hashpolicy"
	"github.com/arnovian/automap/internal/keystore"
	"github.com/arnovian/automap/internal/rawtable"
)

// Map is the mutable auto-incremented mapping. The zero value is not
// usable; construct with New or NewFromIter.
type Map struct {
	*core
}

var _ automap = (*Map)(nil)

// New constructs an empty, generic-category mutable map.
func New(opts ...Option) *Map {
	cfg := defaultConfig()
	cfg.apply(opts)
	policy := hashpolicy.New(hashpolicy.Generic)
	store := keystore.NewOwned()
	tbl := rawtable.New(policy, store.Ptr)
	return &Map{core: &core{table: tbl, store: store, category: hashpolicy.Generic, cfg: cfg}}
}

// NewFromIter constructs a mutable map from every value seq yields,
// failing on the first duplicate (spec.md invariant 1).
func NewFromIter(seq iter.Seq[any], opts ...Option) (*Map, error) {
	cfg := defaultConfig()
	cfg.apply(opts)
	c, err := buildGeneric(cfg, seq)
	if err != nil {
		return nil, err
	}
	return &Map{core: c}, nil
}

// NewFromSlice is NewFromIter's slice convenience form.
func NewFromSlice(keys []any, opts ...Option) (*Map, error) {
	return NewFromIter(sliceSeq(keys), opts...)
}

func sliceSeq(keys []any) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Add inserts key, returning its position. Returns ErrDuplicateKey
// (unchanged map) if key is already present.
func (m *Map) Add(key any) (pos int, err error) {
	appender, ok := m.store.(keystore.Appender)
	if !ok {
		return 0, ErrUnsupportedArray
	}
	growthsBefore := m.table.Growths()
	pos, err = insertGeneric(m.table, appender, key)
	if err != nil {
		return 0, translateConstructionError(err)
	}
	m.observeGrowth(growthsBefore)
	return pos, nil
}

// Update inserts every key yielded by seq. It is atomic: if any key
// duplicates one already present (or one earlier in seq), the map is left
// exactly as it was before the call (spec.md §4.F "atomic").
func (m *Map) Update(seq iter.Seq[any]) error {
	appender, ok := m.store.(keystore.Appender)
	if !ok {
		return ErrUnsupportedArray
	}

	// Snapshot enough state to roll back: table growths cannot be undone
	// cheaply, so Update stages into a scratch core built from the
	// existing keys plus the new ones, and only swaps it in on success.
	existing := make([]any, m.store.Len())
	for i := range existing {
		existing[i] = m.store.Boxed(i)
	}

	combined := func(yield func(any) bool) {
		for _, k := range existing {
			if !yield(k) {
				return
			}
		}
		for k := range seq {
			if !yield(k) {
				return
			}
		}
	}

	staged, err := buildGeneric(m.cfg, combined)
	if err != nil {
		return err
	}
	m.core = staged
	return nil
}

// Extend appends every key of other, in other's iteration order, to m. Like
// Update it is atomic: if any key of other duplicates one already present
// in m (or another key of other), m is left exactly as it was before the
// call and ErrDuplicateKey is returned — same semantics as `a |= b` in the
// original automap (see original_source/test_automap.py's test_issue_3 and
// test_automap_property.py's union tests: re-extending with an existing
// key always raises, it is never silently skipped).
func (m *Map) Extend(other automap) error {
	return m.Update(other.Keys())
}

// Or returns a new map containing every key of m followed by every key of
// other, without mutating either input (SPEC_FULL.md §9.1, mirroring Python's
// `a1 | a2`). It fails with ErrDuplicateKey if other shares any key with m,
// the same disambiguation Extend uses.
func (m *Map) Or(other automap) (*Map, error) {
	staged, err := buildGeneric(m.cfg, concatSeq(m, other))
	if err != nil {
		return nil, err
	}
	return &Map{core: staged}, nil
}

// concatSeq yields every key of base, then every key of extra, in order,
// without any membership filtering — any repeat (within base, within
// extra, or across the two) is left for the builder to reject.
func concatSeq(base automap, extra automap) iter.Seq[any] {
	return func(yield func(any) bool) {
		for k := range base.Keys() {
			if !yield(k) {
				return
			}
		}
		for k := range extra.Keys() {
			if !yield(k) {
				return
			}
		}
	}
}

// CopyFrom returns a new mutable map over the same ordered key sequence as
// src (spec.md §4.F "copy", SPEC_FULL.md §9.1). It copies src's keys, in
// order, into a fresh owned key store and seeds a new generic-category
// table from them with Seed, so every key keeps its position and no
// equality check or duplicate detection runs; each key is still hashed
// once. src may be of any variant and category; the copy is always a
// generic-category Map with default options, and it never panics.
func CopyFrom(src automap) *Map {
	keys := make([]any, 0, src.Len())
	for k := range src.Keys() {
		keys = append(keys, k)
	}
	appender := keystore.NewOwned()
	for _, k := range keys {
		appender.Append(k)
	}
	policy := hashpolicy.New(hashpolicy.Generic)
	tbl := rawtable.NewSized(policy, appender.Ptr, appender.Len())
	tbl.Seed(appender.Len())
	cfg := defaultConfig()
	return &Map{core: &core{table: tbl, store: appender, category: hashpolicy.Generic, cfg: cfg}}
}

func (m *Map) observeGrowth(before int) {
	if after := m.table.Growths(); after > before {
		m.cfg.logger.Debug("automap: table grew", zapLenField(m.table.Len()), zapCapacityField(m.table.Cap()))
		for ; before < after; before++ {
			m.cfg.metrics.incTableGrowth()
		}
	}
}

// insertGeneric checks membership before appending so that a duplicate
// key never leaves a stray, uncounted entry in store — Add must be a
// strict no-op on the key store when it fails.
func insertGeneric(tbl *rawtable.Table, store keystore.Appender, key any) (pos int, err error) {
	defer func() {
		if r := recover(); r != nil {
			if uh, ok := r.(*hashpolicy.ErrUnhashable); ok {
				err = uh
				return
			}
			panic(r)
		}
	}()
	if existing, ok := tbl.LookupBoxed(key); ok {
		return existing, ErrDuplicateKey
	}
	idx := store.Append(key)
	ptr := store.Ptr(idx)
	assigned, dup := tbl.Insert(ptr)
	if dup {
		return assigned, ErrDuplicateKey
	}
	return assigned, nil
}
