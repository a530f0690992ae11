package hashpolicy

import "unsafe"

// Policy hashes and compares keys of one fixed Category without boxing.
// Hash and Equal are called on the probe hot path in internal/rawtable and
// must not allocate.
//
// Raw-mode methods (Hash/Equal) operate on unsafe.Pointer to an element in
// its native representation — either the address of a single boxed value
// (generic path) or an offset into a borrowed typed-array buffer (fast
// path). Boxed-mode methods (HashBoxed/EqualBoxed) accept an any so a
// lookup with a host-boxed value (e.g. looking up int(10) against a map
// built from a []int32 buffer) can be hashed/compared against the same
// slots, satisfying the cross-representation contract in spec.md §4.A.
type Policy interface {
	// Category identifies which Policy this is; used for diagnostics and
	// by the serializer to pick the wire format.
	Category() Category

	// Hash computes a 64-bit hash of the element at ptr.
	Hash(ptr unsafe.Pointer) uint64

	// Equal reports whether the elements at a and b are equal.
	Equal(a, b unsafe.Pointer) bool

	// HashBoxed computes the hash a boxed host value would have under
	// this policy. ok is false if key cannot be interpreted under this
	// category (e.g. a string looked up against an integer-category map).
	HashBoxed(key any) (h uint64, ok bool)

	// EqualBoxed compares the raw element at ptr against a boxed host
	// value. Always returns false (never panics) if key's type cannot be
	// interpreted under this category.
	EqualBoxed(ptr unsafe.Pointer, key any) bool
}

// New returns the Policy for the given category. Generic is backed by
// newGenericPolicy; every primitive category has a dedicated, allocation
// free implementation. Bytes and Unicode are variable-width-per-map
// categories (spec.md §3 "fixed-width buffer"); use NewFixedWidth for
// those instead — New panics if called with them.
func New(cat Category) Policy {
	switch cat {
	case Generic:
		return newGenericPolicy()
	case Int8:
		return newIntPolicy[int8](cat)
	case Int16:
		return newIntPolicy[int16](cat)
	case Int32:
		return newIntPolicy[int32](cat)
	case Int64:
		return newIntPolicy[int64](cat)
	case Uint8:
		return newUintPolicy[uint8](cat)
	case Uint16:
		return newUintPolicy[uint16](cat)
	case Uint32:
		return newUintPolicy[uint32](cat)
	case Uint64:
		return newUintPolicy[uint64](cat)
	case Float16:
		return newFloat16Policy()
	case Float32:
		return newFloatPolicy[float32](cat)
	case Float64:
		return newFloatPolicy[float64](cat)
	case Bytes, Unicode:
		panic("hashpolicy: Bytes/Unicode require NewFixedWidth")
	default:
		panic("hashpolicy: unknown category")
	}
}

// NewFixedWidth returns the Policy for a Bytes or Unicode category whose
// per-key row width (bytes for Bytes, runes for Unicode) is fixed at
// width for the lifetime of the map.
func NewFixedWidth(cat Category, width int) Policy {
	switch cat {
	case Bytes:
		return newBytesPolicyWidth(width)
	case Unicode:
		return newUnicodePolicyWidth(width)
	default:
		panic("hashpolicy: NewFixedWidth only supports Bytes/Unicode")
	}
}
