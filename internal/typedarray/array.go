// Package typedarray implements the bulk-insert fast path of spec.md §4.E:
// recognizing an immutable, contiguous, one-dimensional buffer of a
// primitive category and feeding it straight to internal/rawtable and a
// borrowed internal/keystore view, without ever boxing an element.
//
// © 2025 automap authors. MIT License.
package typedarray

import (
	"errors"
	"unsafe"

	"github.com/arnovian/automap/internal/hashpolicy"
)

// ErrUnsupportedArray is returned when Recognize sees a value that looks
// like a typed array but fails one of the fast-path preconditions
// (non-contiguous, writable, foreign byte order, or reshaped). The fast
// path never falls back to the generic path on this error (spec.md §4.E,
// scenario S6) — the caller must surface it.
var ErrUnsupportedArray = errors.New("typedarray: unsupported array")

// ErrNonUnique is returned by Build when the buffer contains two elements
// that compare equal under the category's equality. Distinct from the
// generic path's duplicate-key error so callers can tell which path
// rejected the input (spec.md §4.E vs §7).
var ErrNonUnique = errors.New("typedarray: non-unique array element")

// Array describes one recognized buffer: a fixed-width, contiguous run of
// Len elements of Category starting at Data. Width is the per-element
// byte width for scalar categories, or the per-row byte width for Bytes
// (RowBytes) and Unicode (RowRunes*4) categories.
type Array struct {
	Category    hashpolicy.Category
	Width       int
	Len         int
	Data        unsafe.Pointer
	Contiguous  bool
	Writable    bool
	NativeOrder bool

	// Keep anchors the Go value Data was derived from so the garbage
	// collector does not reclaim it out from under a borrowed key store.
	Keep any
}

// Valid reports whether a recognized Array satisfies every fast-path
// precondition in spec.md §4.E: contiguous, immutable, native byte order.
func (a Array) Valid() bool {
	return a.Contiguous && !a.Writable && a.NativeOrder
}

// TypedArray lets a host type (e.g. an Arrow/columnar buffer wrapper)
// plug directly into the fast path without Recognize knowing its
// concrete type in advance (spec.md §4.E, SPEC_FULL.md §8). Recognize has
// no way to independently verify a host buffer's stride or byte order, so
// implementers must report Contiguous and NativeOrder accurately: a
// sliced/strided view or a foreign-byte-order buffer must report false for
// the corresponding method, or Build can be handed invalid element bytes
// (spec.md §4.E precondition 2, scenario S6).
type TypedArray interface {
	Category() hashpolicy.Category
	Len() int
	Data() unsafe.Pointer
	Writable() bool
	Contiguous() bool
	NativeOrder() bool
}

// Recognize inspects v and, if it is one of the natively supported Go
// slice types or implements TypedArray, returns the Array view describing
// it. ok is false for any value Recognize does not know how to view as a
// typed array at all (the caller should fall back to the generic path in
// that case, not treat it as ErrUnsupportedArray — that error is reserved
// for recognized-but-invalid buffers per spec.md §4.E).
func Recognize(v any) (Array, bool) {
	switch s := v.(type) {
	case []int8:
		return sliceArray(hashpolicy.Int8, 1, s), true
	case []int16:
		return sliceArray(hashpolicy.Int16, 2, s), true
	case []int32:
		return sliceArray(hashpolicy.Int32, 4, s), true
	case []int64:
		return sliceArray(hashpolicy.Int64, 8, s), true
	case []uint8:
		return sliceArray(hashpolicy.Uint8, 1, s), true
	case []uint16:
		return sliceArray(hashpolicy.Uint16, 2, s), true
	case []uint32:
		return sliceArray(hashpolicy.Uint32, 4, s), true
	case []uint64:
		return sliceArray(hashpolicy.Uint64, 8, s), true
	case []float32:
		return sliceArray(hashpolicy.Float32, 4, s), true
	case []float64:
		return sliceArray(hashpolicy.Float64, 8, s), true
	case Float16Slice:
		return sliceArray(hashpolicy.Float16, 2, []uint16(s)), true
	case TypedArray:
		return Array{
			Category:    s.Category(),
			Width:       s.Category().Width(),
			Len:         s.Len(),
			Data:        s.Data(),
			Contiguous:  s.Contiguous(),
			Writable:    s.Writable(),
			NativeOrder: s.NativeOrder(),
			Keep:        v,
		}, true
	default:
		return Array{}, false
	}
}

// sliceArray builds an Array view over a native Go slice. A Go slice is
// always contiguous and native byte order by construction; Writable is
// always true for a plain slice since Go has no immutable-slice marker —
// the host must route through ImmutableView (or a TypedArray wrapper that
// reports Writable()==false) to take the fast path.
func sliceArray[T any](cat hashpolicy.Category, width int, s []T) Array {
	var data unsafe.Pointer
	if len(s) > 0 {
		data = unsafe.Pointer(&s[0])
	}
	return Array{
		Category:    cat,
		Width:       width,
		Len:         len(s),
		Data:        data,
		Contiguous:  true,
		Writable:    true,
		NativeOrder: true,
		Keep:        s,
	}
}

// ImmutableView wraps a native Go slice to assert the host promises never
// to mutate it again (spec.md §4.E precondition 1, invariant 6). This is
// the idiomatic Go stand-in for a host's own "freeze this buffer" step;
// Recognize trusts the assertion and reports Writable==false for it.
type ImmutableView struct {
	arr Array
}

// Freeze constructs an ImmutableView over a recognized Array, provided it
// is not already rejected by shape (Recognize never fails on plain Go
// slices, so this only ever marks Writable=false).
func Freeze(v any) (ImmutableView, error) {
	a, ok := Recognize(v)
	if !ok {
		return ImmutableView{}, ErrUnsupportedArray
	}
	a.Writable = false
	return ImmutableView{arr: a}, nil
}

func (f ImmutableView) Category() hashpolicy.Category { return f.arr.Category }
func (f ImmutableView) Len() int                      { return f.arr.Len }
func (f ImmutableView) Data() unsafe.Pointer           { return f.arr.Data }
func (f ImmutableView) Writable() bool                 { return false }
func (f ImmutableView) Contiguous() bool               { return f.arr.Contiguous }
func (f ImmutableView) NativeOrder() bool              { return f.arr.NativeOrder }

// Float16Slice wraps a []hashpolicy.Float16-compatible raw uint16 buffer
// so IEEE 754 binary16 arrays can take the fast path despite Go having no
// native float16 type (SPEC_FULL.md §8).
type Float16Slice []uint16
