package genericpath

import (
	"errors"
	"testing"
)

func TestBuildSliceAssignsInsertionOrderPositions(t *testing.T) {
	built, err := BuildSlice([]any{"x", "y", "z"})
	if err != nil {
		t.Fatalf("BuildSlice: %v", err)
	}
	if built.Store.Len() != 3 {
		t.Fatalf("Store.Len() = %d, want 3", built.Store.Len())
	}
	for i, want := range []any{"x", "y", "z"} {
		pos, ok := built.Table.LookupBoxed(want)
		if !ok || pos != i {
			t.Fatalf("LookupBoxed(%v) = (%d, %v), want (%d, true)", want, pos, ok, i)
		}
	}
}

func TestBuildSliceRejectsAnyDuplicate(t *testing.T) {
	_, err := BuildSlice([]any{"x", "y", "x"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("BuildSlice with a duplicate = %v, want ErrDuplicate", err)
	}
}

func TestBuildSliceEmptyInput(t *testing.T) {
	built, err := BuildSlice(nil)
	if err != nil {
		t.Fatalf("BuildSlice(nil): %v", err)
	}
	if built.Store.Len() != 0 {
		t.Fatalf("expected empty store, got Len()=%d", built.Store.Len())
	}
}
