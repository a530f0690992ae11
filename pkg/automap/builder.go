package automap

// builder.go deduplicates concurrent FrozenMap construction over the
// same backing buffer, the Go-idiomatic analogue of the teacher's
// singleflight-based thundering-herd guard in pkg/loader.go. It changes
// nothing about per-map concurrency (spec.md §5 — a single map is still
// not safe for concurrent mutation); it only ensures that if several
// goroutines race to materialize an index over the same immutable
// typed-array buffer, exactly one of them does the work.
//
// © 2025 automap authors. MIT License.

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/arnovian/automap/internal/typedarray"
)

// Builder coalesces concurrent typed-array construction requests keyed
// by the backing buffer's address and length.
type Builder struct {
	g singleflight.Group
}

// NewBuilder returns a ready-to-use Builder.
func NewBuilder() *Builder { return &Builder{} }

// BuildFrozenFromArray returns a *FrozenMap over v. Calls for the same
// (category, address, length) that overlap in time share one run of the
// typed-array fast path: callers that arrive while it is in flight receive
// its result (and its error, if any), built with the first caller's
// options. Once that run has returned, a later call builds again; results
// are not cached.
func (b *Builder) BuildFrozenFromArray(v any, rowWidth int, opts ...Option) (*FrozenMap, error) {
	key, ok := bufferKey(v)
	if !ok {
		// Unkeyable inputs (not a recognized typed array) still go
		// through the fast path directly — there is nothing to dedupe.
		return NewFrozenFromArray(v, rowWidth, opts...)
	}
	result, err, _ := b.g.Do(key, func() (any, error) {
		return NewFrozenFromArray(v, rowWidth, opts...)
	})
	if err != nil {
		return nil, err
	}
	return result.(*FrozenMap), nil
}

// bufferKey derives a singleflight key from v's backing buffer address
// and element count, so two distinct slices happening to share content
// are not coalesced, but the same slice value requested from many
// goroutines is.
func bufferKey(v any) (string, bool) {
	arr, ok := typedarray.Recognize(v)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s:%d:%d", arr.Category, uintptr(arr.Data), arr.Len), true
}
