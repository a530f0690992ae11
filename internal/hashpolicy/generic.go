package hashpolicy

import (
	"fmt"
	"hash/maphash"
	"unsafe"
)

// ErrUnhashable is the panic value genericPolicy raises when the host's
// equality or hash check panics on an incomparable dynamic value (e.g. a
// slice or map stored inside an any); callers such as internal/genericpath
// recover it and return it as an error, matching spec.md §7 "Unhashable
// key" / §4.A "may raise if the host hash fails".
type ErrUnhashable struct {
	Value any
}

func (e *ErrUnhashable) Error() string {
	return fmt.Sprintf("hashpolicy: value of type %T is not hashable", e.Value)
}

// genericPolicy defers to Go's own comparable/hash machinery for
// arbitrary host objects, via hash/maphash.Comparable (Go 1.24). Each
// policy instance carries its own random seed, so the resulting hash is
// stable only within the process and the lifetime of one map instance —
// exactly spec.md's "stability within a process" contract (testable
// property 6), never across restarts (spec.md §1 Non-goals).
type genericPolicy struct {
	seed maphash.Seed
}

func newGenericPolicy() Policy {
	return &genericPolicy{seed: maphash.MakeSeed()}
}

func (p *genericPolicy) Category() Category { return Generic }

func (p *genericPolicy) Hash(ptr unsafe.Pointer) uint64 {
	v := *(*any)(ptr)
	return p.hashAny(v)
}

// hashAny recovers from a panic raised by comparing/hashing an
// incomparable dynamic value and instead panics with a typed
// *ErrUnhashable so callers (internal/genericpath) can propagate a
// well-defined error instead of crashing the process.
func (p *genericPolicy) hashAny(v any) (h uint64) {
	defer func() {
		if r := recover(); r != nil {
			panic(&ErrUnhashable{Value: v})
		}
	}()
	return maphash.Comparable(p.seed, v)
}

func (p *genericPolicy) Equal(a, b unsafe.Pointer) bool {
	va, vb := *(*any)(a), *(*any)(b)
	return p.equalAny(va, vb)
}

func (p *genericPolicy) equalAny(a, b any) (eq bool) {
	defer func() {
		if r := recover(); r != nil {
			panic(&ErrUnhashable{Value: a})
		}
	}()
	return a == b
}

func (p *genericPolicy) HashBoxed(key any) (uint64, bool) {
	return p.hashAny(key), true
}

func (p *genericPolicy) EqualBoxed(ptr unsafe.Pointer, key any) bool {
	v := *(*any)(ptr)
	return p.equalAny(v, key)
}
