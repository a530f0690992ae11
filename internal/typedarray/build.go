package typedarray

import (
	"unsafe"

	"github.com/arnovian/automap/internal/hashpolicy"
	"github.com/arnovian/automap/internal/keystore"
	"github.com/arnovian/automap/internal/rawtable"
)

// Built is the fast path's output: a table and a borrowed key store ready
// to be wrapped by a FrozenMap, with no per-element boxing having
// occurred (spec.md §4.E).
type Built struct {
	Table    *rawtable.Table
	Store    keystore.KeyStore
	Category hashpolicy.Category
}

// Build validates arr against every fast-path precondition and, if it
// passes, bulk-inserts its elements directly from the raw buffer. On
// success every element has a distinct position assigned in buffer order
// (spec.md's "construction either fully succeeds or fails atomically" —
// there is no partial result to observe on error, since positions equal
// buffer indices and are never reassigned).
//
// rowWidth must be supplied explicitly for Bytes and Unicode categories,
// as the row size in bytes (runes*4 for Unicode), since those are
// variable-width-per-map categories whose fixed row size cannot be
// inferred from the TypedArray interface alone; pass 0 for
// every other category and Build derives the width from arr.Category.
func Build(arr Array, rowWidth int) (Built, error) {
	if !arr.Valid() {
		return Built{}, ErrUnsupportedArray
	}

	width := arr.Width
	if width == 0 {
		width = rowWidth
	}
	if width <= 0 && arr.Len > 0 {
		return Built{}, ErrUnsupportedArray
	}

	var policy hashpolicy.Policy
	switch arr.Category {
	case hashpolicy.Bytes:
		policy = hashpolicy.NewFixedWidth(arr.Category, width)
	case hashpolicy.Unicode:
		// width is the row size in bytes; the Unicode policy counts runes.
		policy = hashpolicy.NewFixedWidth(arr.Category, width/4)
	default:
		policy = hashpolicy.New(arr.Category)
	}

	store := keystore.NewBorrowed(arr.Data, width, arr.Len, boxerFor(arr.Category, policy), arr.Keep)

	tbl := rawtable.NewSized(policy, store.Ptr, arr.Len)
	for i := 0; i < arr.Len; i++ {
		if _, dup := tbl.Insert(store.Ptr(i)); dup {
			return Built{}, ErrNonUnique
		}
	}

	return Built{Table: tbl, Store: store, Category: arr.Category}, nil
}

// boxerFor returns the function a borrowed key store uses to materialize
// a host-facing any from a raw element pointer, e.g. for Keys()/Items()
// iteration and serialization. It is the one place the fast path pays a
// boxing cost, and only when the caller actually asks to see a key.
func boxerFor(cat hashpolicy.Category, policy hashpolicy.Policy) func(unsafe.Pointer) any {
	switch p := policy.(type) {
	case interface{ RowBytes() int }:
		width := p.RowBytes()
		return func(ptr unsafe.Pointer) any {
			if width == 0 {
				return []byte{}
			}
			b := unsafe.Slice((*byte)(ptr), width)
			cp := make([]byte, width)
			copy(cp, b)
			return cp
		}
	case interface{ RowRunes() int }:
		width := p.RowRunes()
		return func(ptr unsafe.Pointer) any {
			if width == 0 {
				return ""
			}
			return string(unsafe.Slice((*rune)(ptr), width))
		}
	}

	switch cat {
	case hashpolicy.Int8:
		return func(ptr unsafe.Pointer) any { return *(*int8)(ptr) }
	case hashpolicy.Int16:
		return func(ptr unsafe.Pointer) any { return *(*int16)(ptr) }
	case hashpolicy.Int32:
		return func(ptr unsafe.Pointer) any { return *(*int32)(ptr) }
	case hashpolicy.Int64:
		return func(ptr unsafe.Pointer) any { return *(*int64)(ptr) }
	case hashpolicy.Uint8:
		return func(ptr unsafe.Pointer) any { return *(*uint8)(ptr) }
	case hashpolicy.Uint16:
		return func(ptr unsafe.Pointer) any { return *(*uint16)(ptr) }
	case hashpolicy.Uint32:
		return func(ptr unsafe.Pointer) any { return *(*uint32)(ptr) }
	case hashpolicy.Uint64:
		return func(ptr unsafe.Pointer) any { return *(*uint64)(ptr) }
	case hashpolicy.Float32:
		return func(ptr unsafe.Pointer) any { return *(*float32)(ptr) }
	case hashpolicy.Float64:
		return func(ptr unsafe.Pointer) any { return *(*float64)(ptr) }
	case hashpolicy.Float16:
		return func(ptr unsafe.Pointer) any { return hashpolicy.Float16(*(*uint16)(ptr)) }
	default:
		return func(ptr unsafe.Pointer) any { return *(*any)(ptr) }
	}
}
