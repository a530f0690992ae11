package keystore

import (
	"testing"
	"unsafe"
)

func TestOwnedStoreAppendAndBoxed(t *testing.T) {
	s := NewOwned()
	for i, v := range []any{"a", "b", "c"} {
		pos := s.Append(v)
		if pos != i {
			t.Fatalf("Append(%v) = %d, want %d", v, pos, i)
		}
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if !s.Owned() {
		t.Fatalf("expected ownedStore.Owned() == true")
	}
	for i, want := range []any{"a", "b", "c"} {
		if got := s.Boxed(i); got != want {
			t.Fatalf("Boxed(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestBorrowedStoreZeroCopyView(t *testing.T) {
	backing := []int32{11, 22, 33}
	base := unsafe.Pointer(&backing[0])
	boxer := func(ptr unsafe.Pointer) any { return *(*int32)(ptr) }

	s := NewBorrowed(base, int(unsafe.Sizeof(backing[0])), len(backing), boxer, backing)
	if s.Owned() {
		t.Fatalf("expected borrowedStore.Owned() == false")
	}
	if s.Len() != len(backing) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(backing))
	}
	for i, want := range backing {
		if got := s.Boxed(i); got != want {
			t.Fatalf("Boxed(%d) = %v, want %v", i, got, want)
		}
	}

	// Mutating the backing array must be visible through the view: the
	// store holds no copy, only an offset into the original buffer.
	backing[1] = 99
	if got := s.Boxed(1); got != int32(99) {
		t.Fatalf("expected borrowed view to reflect backing mutation, got %v", got)
	}
}
