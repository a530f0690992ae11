package typedarray

import (
	"testing"
	"unsafe"

	"github.com/arnovian/automap/internal/hashpolicy"
)

func TestRecognizeNativeSlices(t *testing.T) {
	cases := []any{
		[]int8{1, 2}, []int16{1, 2}, []int32{1, 2}, []int64{1, 2},
		[]uint8{1, 2}, []uint16{1, 2}, []uint32{1, 2}, []uint64{1, 2},
		[]float32{1, 2}, []float64{1, 2}, Float16Slice{1, 2},
	}
	for _, v := range cases {
		arr, ok := Recognize(v)
		if !ok {
			t.Fatalf("Recognize(%T) returned ok=false", v)
		}
		if !arr.Writable {
			t.Fatalf("Recognize(%T) should report Writable=true for a plain slice", v)
		}
		if arr.Valid() {
			t.Fatalf("a writable, unfrozen slice must never report Valid()==true")
		}
	}
}

func TestRecognizeUnknownType(t *testing.T) {
	if _, ok := Recognize("not a typed array"); ok {
		t.Fatalf("Recognize should return ok=false for an unrecognized type")
	}
}

func TestFreezeMarksImmutable(t *testing.T) {
	view, err := Freeze([]int64{1, 2, 3})
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	arr, ok := Recognize(view)
	if !ok {
		t.Fatalf("Recognize(ImmutableView) returned ok=false")
	}
	if !arr.Valid() {
		t.Fatalf("a frozen, contiguous, native-order buffer must be Valid()")
	}
}

func TestBuildRejectsWritableBuffer(t *testing.T) {
	arr, _ := Recognize([]int64{1, 2, 3})
	if _, err := Build(arr, 0); err != ErrUnsupportedArray {
		t.Fatalf("Build on a writable array = %v, want ErrUnsupportedArray", err)
	}
}

func TestBuildDetectsNonUniqueElements(t *testing.T) {
	view, err := Freeze([]int64{1, 2, 2, 3})
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	arr, _ := Recognize(view)
	if _, err := Build(arr, 0); err != ErrNonUnique {
		t.Fatalf("Build on buffer with a duplicate = %v, want ErrNonUnique", err)
	}
}

// stridedArray is a host TypedArray implementer that honestly reports a
// sliced/strided buffer (e.g. every other element of a larger Arrow
// column) as non-contiguous (spec.md §4.E precondition 2, scenario S6).
type stridedArray struct {
	data []int64
}

func (s stridedArray) Category() hashpolicy.Category { return hashpolicy.Int64 }
func (s stridedArray) Len() int                      { return len(s.data) }
func (s stridedArray) Data() unsafe.Pointer           { return unsafe.Pointer(&s.data[0]) }
func (s stridedArray) Writable() bool                 { return false }
func (s stridedArray) Contiguous() bool               { return false }
func (s stridedArray) NativeOrder() bool              { return true }

// foreignOrderArray is a host TypedArray implementer reporting a buffer
// stored in non-native byte order (spec.md §4.E precondition 2, scenario
// S6).
type foreignOrderArray struct {
	data []int64
}

func (s foreignOrderArray) Category() hashpolicy.Category { return hashpolicy.Int64 }
func (s foreignOrderArray) Len() int                      { return len(s.data) }
func (s foreignOrderArray) Data() unsafe.Pointer          { return unsafe.Pointer(&s.data[0]) }
func (s foreignOrderArray) Writable() bool                { return false }
func (s foreignOrderArray) Contiguous() bool              { return true }
func (s foreignOrderArray) NativeOrder() bool             { return false }

func TestRecognizeRejectsNonContiguousHostBuffer(t *testing.T) {
	arr, ok := Recognize(stridedArray{data: []int64{1, 2, 3}})
	if !ok {
		t.Fatalf("Recognize(stridedArray) returned ok=false, want a recognized-but-invalid Array")
	}
	if arr.Valid() {
		t.Fatalf("a non-contiguous host buffer must never report Valid()==true")
	}
	if _, err := Build(arr, 0); err != ErrUnsupportedArray {
		t.Fatalf("Build on a non-contiguous buffer = %v, want ErrUnsupportedArray", err)
	}
}

func TestRecognizeRejectsForeignByteOrderHostBuffer(t *testing.T) {
	arr, ok := Recognize(foreignOrderArray{data: []int64{1, 2, 3}})
	if !ok {
		t.Fatalf("Recognize(foreignOrderArray) returned ok=false, want a recognized-but-invalid Array")
	}
	if arr.Valid() {
		t.Fatalf("a foreign-byte-order host buffer must never report Valid()==true")
	}
	if _, err := Build(arr, 0); err != ErrUnsupportedArray {
		t.Fatalf("Build on a foreign-byte-order buffer = %v, want ErrUnsupportedArray", err)
	}
}

func TestBuildSucceedsAndPreservesOrder(t *testing.T) {
	view, err := Freeze([]int64{30, 10, 20})
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	arr, _ := Recognize(view)
	built, err := Build(arr, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if built.Store.Len() != 3 {
		t.Fatalf("Store.Len() = %d, want 3", built.Store.Len())
	}
	for i, want := range []int64{30, 10, 20} {
		if got := built.Store.Boxed(i); got != want {
			t.Fatalf("Boxed(%d) = %v, want %v", i, got, want)
		}
		pos, ok := built.Table.Lookup(built.Store.Ptr(i))
		if !ok || pos != i {
			t.Fatalf("Lookup(%v) = (%d, %v), want (%d, true)", want, pos, ok, i)
		}
	}
}
