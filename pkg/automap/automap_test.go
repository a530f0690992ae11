package automap_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/arnovian/automap/internal/typedarray"
	"github.com/arnovian/automap/pkg/automap"
)

func TestNewEmptyMap(t *testing.T) {
	m := automap.New()
	if m.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", m.Len())
	}
	if _, ok := m.Get("missing"); ok {
		t.Fatalf("Get on empty map should report ok=false")
	}
}

func TestAddAssignsOrdinalsAndRejectsDuplicates(t *testing.T) {
	m := automap.New()
	for i, k := range []any{"a", "b", "c"} {
		pos, err := m.Add(k)
		if err != nil {
			t.Fatalf("Add(%v): %v", k, err)
		}
		if pos != i {
			t.Fatalf("Add(%v) = %d, want %d", k, pos, i)
		}
	}
	if _, err := m.Add("b"); !errors.Is(err, automap.ErrDuplicateKey) {
		t.Fatalf("Add(duplicate) = %v, want ErrDuplicateKey", err)
	}
	if m.Len() != 3 {
		t.Fatalf("a rejected Add must leave Len() unchanged, got %d", m.Len())
	}
}

func TestNewFromSliceRejectsAnyDuplicate(t *testing.T) {
	_, err := automap.NewFromSlice([]any{"a", "b", "a"})
	if !errors.Is(err, automap.ErrDuplicateKey) {
		t.Fatalf("NewFromSlice with a duplicate = %v, want ErrDuplicateKey", err)
	}
}

func TestExtendRejectsKeyAlreadyInReceiver(t *testing.T) {
	m, err := automap.NewFromSlice([]any{"a", "b"})
	if err != nil {
		t.Fatalf("NewFromSlice: %v", err)
	}
	other, err := automap.NewFromSlice([]any{"b", "c"})
	if err != nil {
		t.Fatalf("NewFromSlice: %v", err)
	}
	before := m.Len()
	if err := m.Extend(other); !errors.Is(err, automap.ErrDuplicateKey) {
		t.Fatalf("Extend(overlapping) = %v, want ErrDuplicateKey", err)
	}
	if m.Len() != before {
		t.Fatalf("a rejected Extend must leave m unchanged, got Len()=%d, want %d", m.Len(), before)
	}
}

func TestExtendAppendsDisjointKeys(t *testing.T) {
	m, err := automap.NewFromSlice([]any{"a", "b"})
	if err != nil {
		t.Fatalf("NewFromSlice: %v", err)
	}
	other, err := automap.NewFromSlice([]any{"c", "d"})
	if err != nil {
		t.Fatalf("NewFromSlice: %v", err)
	}
	if err := m.Extend(other); err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if m.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 (a, b, c, d)", m.Len())
	}
	pos, ok := m.Get("d")
	if !ok || pos != 3 {
		t.Fatalf("Get(d) = (%d, %v), want (3, true)", pos, ok)
	}
}

func TestUpdateIsAtomicOnDuplicate(t *testing.T) {
	m, err := automap.NewFromSlice([]any{"a", "b"})
	if err != nil {
		t.Fatalf("NewFromSlice: %v", err)
	}
	before := m.Len()
	err = m.Update(func(yield func(any) bool) {
		yield("c")
		yield("a") // duplicates an existing key: whole call must fail
	})
	if !errors.Is(err, automap.ErrDuplicateKey) {
		t.Fatalf("Update = %v, want ErrDuplicateKey", err)
	}
	if m.Len() != before {
		t.Fatalf("failed Update must leave map unchanged, got Len()=%d, want %d", m.Len(), before)
	}
}

func TestCopyFromIsIndependent(t *testing.T) {
	src, err := automap.NewFromSlice([]any{"a", "b"})
	if err != nil {
		t.Fatalf("NewFromSlice: %v", err)
	}
	dst := automap.CopyFrom(src)
	if _, err := dst.Add("c"); err != nil {
		t.Fatalf("Add on copy: %v", err)
	}
	if src.Len() != 2 {
		t.Fatalf("mutating the copy must not affect src, got src.Len()=%d", src.Len())
	}
	if dst.Len() != 3 {
		t.Fatalf("dst.Len() = %d, want 3", dst.Len())
	}
}

func TestFrozenHashDeterministicAcrossInstances(t *testing.T) {
	f1, err := automap.NewFrozenFromSlice([]any{"a", "b", "c"})
	if err != nil {
		t.Fatalf("NewFrozenFromSlice: %v", err)
	}
	f2, err := automap.NewFrozenFromSlice([]any{"a", "b", "c"})
	if err != nil {
		t.Fatalf("NewFrozenFromSlice: %v", err)
	}
	if f1.Hash() != f1.Hash() {
		t.Fatalf("Hash() must be stable across repeated calls on the same instance")
	}
	if f1.Hash() != f2.Hash() {
		t.Fatalf("two separately built FrozenMaps over the same ordered key sequence must hash identically")
	}

	f3, err := automap.NewFrozenFromSlice([]any{"c", "b", "a"})
	if err != nil {
		t.Fatalf("NewFrozenFromSlice: %v", err)
	}
	if f1.Equal(f3) {
		t.Fatalf("maps with the same keys in a different order must not be Equal")
	}
}

func TestNewFrozenFromArrayFastPath(t *testing.T) {
	view, err := typedarray.Freeze([]int64{100, 200, 300})
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	fm, err := automap.NewFrozenFromArray(view, 0)
	if err != nil {
		t.Fatalf("NewFrozenFromArray: %v", err)
	}
	pos, ok := fm.Get(int64(200))
	if !ok || pos != 1 {
		t.Fatalf("Get(200) = (%d, %v), want (1, true)", pos, ok)
	}
	// Cross-representation lookup: a plain int must find the same slot as
	// the int64 the map was built from.
	if pos, ok := fm.Get(200); !ok || pos != 1 {
		t.Fatalf("Get(int(200)) = (%d, %v), want (1, true)", pos, ok)
	}
}

func TestNewFrozenFromArrayRejectsWritableBuffer(t *testing.T) {
	_, err := automap.NewFrozenFromArray([]int64{1, 2, 3}, 0)
	if !errors.Is(err, automap.ErrUnsupportedArray) {
		t.Fatalf("NewFrozenFromArray on a writable slice = %v, want ErrUnsupportedArray", err)
	}
}

func TestNewFrozenFromArrayRejectsNonUniqueElements(t *testing.T) {
	view, err := typedarray.Freeze([]int64{1, 2, 2})
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	_, err = automap.NewFrozenFromArray(view, 0)
	if !errors.Is(err, automap.ErrNonUnique) {
		t.Fatalf("NewFrozenFromArray on non-unique buffer = %v, want ErrNonUnique", err)
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	view, err := typedarray.Freeze([]int64{5, 6, 7, 8})
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	fm, err := automap.NewFrozenFromArray(view, 0)
	if err != nil {
		t.Fatalf("NewFrozenFromArray: %v", err)
	}

	var buf bytes.Buffer
	if err := fm.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	restored, err := automap.DeserializeFrozen(&buf)
	if err != nil {
		t.Fatalf("DeserializeFrozen: %v", err)
	}
	if restored.Len() != fm.Len() {
		t.Fatalf("restored.Len() = %d, want %d", restored.Len(), fm.Len())
	}
	for i := int64(5); i <= 8; i++ {
		want, ok := fm.Get(i)
		if !ok {
			t.Fatalf("original map missing key %d", i)
		}
		got, ok := restored.Get(i)
		if !ok || got != want {
			t.Fatalf("restored.Get(%d) = (%d, %v), want (%d, true)", i, got, ok, want)
		}
	}
}

func TestTypedMapRoundTrip(t *testing.T) {
	tm, err := automap.NewTypedFromSlice([]string{"alpha", "beta", "gamma"})
	if err != nil {
		t.Fatalf("NewTypedFromSlice: %v", err)
	}
	pos, ok := tm.Get("beta")
	if !ok || pos != 1 {
		t.Fatalf("Get(beta) = (%d, %v), want (1, true)", pos, ok)
	}
	var collected []string
	for k := range tm.Keys() {
		collected = append(collected, k)
	}
	want := []string{"alpha", "beta", "gamma"}
	for i, k := range want {
		if collected[i] != k {
			t.Fatalf("Keys()[%d] = %v, want %v", i, collected[i], k)
		}
	}
}
