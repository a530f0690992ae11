package hashpolicy

import "unsafe"

// Float16 is the IEEE 754 binary16 bit pattern. Go has no native float16
// type, so the typed-array fast path and the Float16 category both operate
// on this wrapper — it is exactly two bytes wide, matching spec.md §4.E's
// "element width and endianness are captured" contract for the narrowest
// recognized float category.
type Float16 uint16

// ToFloat32 widens the binary16 bit pattern to float32 following the IEEE
// 754 conversion rules (sign, 5-bit exponent with bias 15, 10-bit mantissa).
func (f Float16) ToFloat32() float32 {
	bits := uint16(f)
	sign := uint32(bits>>15) & 0x1
	exp := uint32(bits>>10) & 0x1F
	mant := uint32(bits) & 0x3FF

	var outExp, outMant uint32
	switch {
	case exp == 0 && mant == 0:
		// signed zero
		outExp, outMant = 0, 0
	case exp == 0:
		// subnormal float16 -> normalize into float32
		e := -1
		m := mant
		for m&0x400 == 0 {
			m <<= 1
			e--
		}
		m &= 0x3FF
		outExp = uint32(int32(e) + 1 + 127 - 15)
		outMant = m << 13
	case exp == 0x1F:
		// inf/nan
		outExp = 0xFF
		outMant = mant << 13
	default:
		outExp = exp - 15 + 127
		outMant = mant << 13
	}

	bits32 := (sign << 31) | (outExp << 23) | outMant
	return *(*float32)(unsafe.Pointer(&bits32))
}

type float16Policy struct{}

func newFloat16Policy() Policy { return float16Policy{} }

func (float16Policy) Category() Category { return Float16 }

func (float16Policy) Hash(ptr unsafe.Pointer) uint64 {
	v := *(*Float16)(ptr)
	return classifyFloat(float64(v.ToFloat32())).hash()
}

func (float16Policy) Equal(a, b unsafe.Pointer) bool {
	fa, fb := *(*Float16)(a), *(*Float16)(b)
	va, vb := float64(fa.ToFloat32()), float64(fb.ToFloat32())
	if va != va || vb != vb { // NaN
		return false
	}
	return classifyFloat(va).equal(classifyFloat(vb))
}

func (float16Policy) HashBoxed(key any) (uint64, bool) {
	n := classifyBoxed(key)
	if !n.ok {
		return 0, false
	}
	return n.hash(), true
}

func (float16Policy) EqualBoxed(ptr unsafe.Pointer, key any) bool {
	v := float64((*(*Float16)(ptr)).ToFloat32())
	if v != v {
		return false
	}
	other := classifyBoxed(key)
	if !other.ok {
		return false
	}
	return classifyFloat(v).equal(other)
}
