package automap

// frozen.go implements FrozenMap: the immutable facade exposed to the
// typed-array fast path (spec.md §4.F "Frozen map"). Once built, its
// table, key store and category never change; its Hash is cached after
// first computation and is a pure function of the ordered key sequence
// and the category (spec.md invariant 5).
//
// © 2025 automap authors. MIT License.

import (
	"hash/maphash"
	"iter"
	"sync"

	"github.com/arnovian/automap/internal/typedarray"
)

// FrozenMap is the immutable auto-incremented mapping.
type FrozenMap struct {
	*core

	hashOnce sync.Once
	hashVal  uint64
}

var _ automap = (*FrozenMap)(nil)

// frozenHashSeed is shared by every FrozenMap built in this process, so
// Hash is a pure function of category + ordered key sequence within a
// single run (spec.md invariant 5): two separately constructed instances
// over the same keys must hash identically. It is still freshly randomized
// each process start, so Hash remains stable only within the current
// process (spec.md §1 Non-goals: "does not attempt stable hashing across
// process restarts").
var frozenHashSeed = maphash.MakeSeed()

// NewFrozen constructs a frozen map from any iterable of keys via the
// generic path, failing on the first duplicate.
func NewFrozen(seq iter.Seq[any], opts ...Option) (*FrozenMap, error) {
	cfg := defaultConfig()
	cfg.apply(opts)
	c, err := buildGeneric(cfg, seq)
	if err != nil {
		return nil, err
	}
	return &FrozenMap{core: c}, nil
}

// NewFrozenFromSlice is NewFrozen's slice convenience form.
func NewFrozenFromSlice(keys []any, opts ...Option) (*FrozenMap, error) {
	return NewFrozen(sliceSeq(keys), opts...)
}

// NewFrozenFromArray builds a frozen map via the typed-array fast path
// (spec.md §4.E). v must be one of the slice types internal/typedarray
// recognizes, or implement typedarray.TypedArray, and must already be
// immutable — wrap a plain Go slice with typedarray.Freeze first unless v
// already reports Writable()==false. rowWidth is only meaningful for
// Bytes/Unicode categories; pass 0 otherwise.
func NewFrozenFromArray(v any, rowWidth int, opts ...Option) (*FrozenMap, error) {
	cfg := defaultConfig()
	cfg.apply(opts)

	if cfg.path == pathGenericForced {
		seq, ok := arrayAsSeq(v)
		if !ok {
			return nil, ErrUnsupportedArray
		}
		c, err := buildGeneric(cfg, seq)
		if err != nil {
			return nil, err
		}
		return &FrozenMap{core: c}, nil
	}

	arr, ok := typedarray.Recognize(v)
	if !ok {
		return nil, ErrUnsupportedArray
	}
	c, err := buildTypedArray(cfg, arr, rowWidth)
	if err != nil {
		return nil, err
	}
	return &FrozenMap{core: c}, nil
}

// arrayAsSeq boxes every element of a recognized typed array so
// WithHasher(true) can force the generic path over the same data for
// testing/benchmark comparison.
func arrayAsSeq(v any) (iter.Seq[any], bool) {
	arr, ok := typedarray.Recognize(v)
	if !ok {
		return nil, false
	}
	built, err := typedarray.Build(arr, 0)
	if err != nil {
		return nil, false
	}
	n := built.Store.Len()
	return func(yield func(any) bool) {
		for i := 0; i < n; i++ {
			if !yield(built.Store.Boxed(i)) {
				return
			}
		}
	}, true
}

// Hash returns a deterministic hash over the category and the ordered key
// sequence, computed once and cached (spec.md invariant 5). Two FrozenMaps
// built from the same ordered key sequence always hash identically within
// the same process, whether or not they are the same instance.
func (f *FrozenMap) Hash() uint64 {
	f.hashOnce.Do(func() {
		var h maphash.Hash
		h.SetSeed(frozenHashSeed)
		h.WriteByte(byte(f.category))
		for k := range f.Keys() {
			b := hashOneKey(frozenHashSeed, k)
			var buf [8]byte
			for i := range buf {
				buf[i] = byte(b >> (8 * i))
			}
			h.Write(buf[:])
		}
		f.hashVal = h.Sum64()
	})
	return f.hashVal
}

func hashOneKey(seed maphash.Seed, k any) (h uint64) {
	defer func() {
		if r := recover(); r != nil {
			h = 0
		}
	}()
	return maphash.Comparable(seed, k)
}
