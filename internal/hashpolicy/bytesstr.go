package hashpolicy

import (
	"unsafe"

	"github.com/cespare/xxhash/v2"

	"github.com/arnovian/automap/internal/unsafehelpers"
)

// Bytes and Unicode categories are fixed-width buffers (spec.md §3: "byte-
// string (fixed-width buffer), unicode-string (fixed-width code-point
// buffer)"), analogous to a numpy dtype('S10') or dtype('U10') column:
// every key occupies exactly Width bytes (Bytes) or Width runes (Unicode)
// of the shared backing buffer. Because the width is constant across the
// whole map, the policy itself carries it — no per-key header needs to be
// synthesized, so a borrowed key store's Ptr(i) can address straight into
// the original buffer at i*rowBytes with zero extra allocation.

/* ------------------------------ bytes policy ------------------------------ */

type bytesPolicy struct{ width int }

// newBytesPolicyWidth builds a Bytes-category policy for rows of the given
// width in bytes.
func newBytesPolicyWidth(width int) Policy { return bytesPolicy{width: width} }

func (p bytesPolicy) Category() Category { return Bytes }

// RowBytes reports the fixed width, in bytes, of one key under this
// policy; used by internal/keystore and internal/typedarray to compute
// per-row offsets.
func (p bytesPolicy) RowBytes() int { return p.width }

func (p bytesPolicy) row(ptr unsafe.Pointer) []byte {
	if p.width == 0 {
		return nil
	}
	return unsafehelpers.ByteSliceFrom(ptr, uintptr(p.width))
}

func (p bytesPolicy) Hash(ptr unsafe.Pointer) uint64 {
	return xxhash.Sum64(p.row(ptr))
}

func (p bytesPolicy) Equal(a, b unsafe.Pointer) bool {
	return string(p.row(a)) == string(p.row(b))
}

func (p bytesPolicy) HashBoxed(key any) (uint64, bool) {
	switch v := key.(type) {
	case []byte:
		return xxhash.Sum64(v), true
	case string:
		return xxhash.Sum64String(v), true
	default:
		return 0, false
	}
}

func (p bytesPolicy) EqualBoxed(ptr unsafe.Pointer, key any) bool {
	row := p.row(ptr)
	switch v := key.(type) {
	case []byte:
		return string(row) == string(v)
	case string:
		return string(row) == v
	default:
		return false
	}
}

/* ----------------------------- unicode policy ----------------------------- */

type unicodePolicy struct{ width int } // width in runes (int32 code points)

func newUnicodePolicyWidth(width int) Policy { return unicodePolicy{width: width} }

func (p unicodePolicy) Category() Category { return Unicode }

// RowRunes reports the fixed width, in runes, of one key under this
// policy.
func (p unicodePolicy) RowRunes() int { return p.width }

func (p unicodePolicy) row(ptr unsafe.Pointer) []int32 {
	if p.width == 0 {
		return nil
	}
	return unsafehelpers.PtrSlice((*int32)(ptr), p.width)
}

func (p unicodePolicy) Hash(ptr unsafe.Pointer) uint64 {
	runes := p.row(ptr)
	if len(runes) == 0 {
		return xxhash.Sum64(nil)
	}
	bytes := unsafe.Slice((*byte)(unsafe.Pointer(&runes[0])), len(runes)*4)
	return xxhash.Sum64(bytes)
}

func (p unicodePolicy) Equal(a, b unsafe.Pointer) bool {
	ra, rb := p.row(a), p.row(b)
	for i := range ra {
		if ra[i] != rb[i] {
			return false
		}
	}
	return true
}

func (p unicodePolicy) HashBoxed(key any) (uint64, bool) {
	s, ok := key.(string)
	if !ok {
		return 0, false
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return xxhash.Sum64(nil), true
	}
	bytes := unsafe.Slice((*byte)(unsafe.Pointer(&runes[0])), len(runes)*4)
	return xxhash.Sum64(bytes), true
}

func (p unicodePolicy) EqualBoxed(ptr unsafe.Pointer, key any) bool {
	s, ok := key.(string)
	if !ok {
		return false
	}
	row := p.row(ptr)
	sr := []rune(s)
	if len(row) != len(sr) {
		return false
	}
	for i := range row {
		if row[i] != sr[i] {
			return false
		}
	}
	return true
}
