package hashpolicy

import (
	"testing"
	"unsafe"
)

func TestCrossRepresentationEquivalence(t *testing.T) {
	cases := []struct {
		name string
		a, b any
	}{
		{"int8 vs int64 same value", int8(5), int64(5)},
		{"uint32 vs int positive", uint32(7), int(7)},
		{"bool true vs one", true, 1},
		{"bool false vs zero", false, 0},
		{"float64 integral vs int", float64(9), int64(9)},
		{"float32 integral vs uint", float32(3), uint(3)},
		{"negative int32 vs int64", int32(-42), int64(-42)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			na, nb := classifyBoxed(tc.a), classifyBoxed(tc.b)
			if !na.ok || !nb.ok {
				t.Fatalf("classifyBoxed reported not ok for %v/%v", tc.a, tc.b)
			}
			if !na.equal(nb) {
				t.Errorf("expected %#v (%v) to equal %#v (%v)", tc.a, tc.a, tc.b, tc.b)
			}
			if na.hash() != nb.hash() {
				t.Errorf("expected equal values to hash identically: %v vs %v", tc.a, tc.b)
			}
		})
	}
}

func TestDistinctMagnitudesNeverEqual(t *testing.T) {
	na := classifyBoxed(int64(5))
	nb := classifyBoxed(int64(-5))
	if na.equal(nb) {
		t.Errorf("5 and -5 must not compare equal")
	}
}

func TestNaNNeverEqualsItself(t *testing.T) {
	f64 := floatPolicy[float64]{cat: Float64}
	nan := nan64()
	ptr := unsafe.Pointer(&nan)
	if f64.Equal(ptr, ptr) {
		t.Errorf("NaN must never equal itself under float category equality")
	}
}

func nan64() float64 {
	var zero float64
	return zero / zero
}
