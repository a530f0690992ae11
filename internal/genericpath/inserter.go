// Package genericpath implements the generic-object construction path of
// spec.md §4.D: it accepts any iterable of host values, hashes and
// compares each one through the generic policy, and inserts it into an
// internal/rawtable.Table backed by an owned internal/keystore.
//
// © 2025 automap authors. MIT License.
package genericpath

import (
	"errors"
	"fmt"
	"iter"

	"github.com/arnovian/automap/internal/hashpolicy"
	"github.com/arnovian/automap/internal/keystore"
	"github.com/arnovian/automap/internal/rawtable"
)

// ErrDuplicate is returned when an input element equals one already
// inserted (spec.md invariant 1: "any attempt to insert a duplicate fails
// the construction"). The caller (pkg/automap) wraps this with the
// public ErrDuplicateKey sentinel.
var ErrDuplicate = errors.New("genericpath: duplicate key")

// Built is the generic path's output.
type Built struct {
	Table *rawtable.Table
	Store keystore.Appender
}

// BuildSlice inserts every element of keys in order. On the first
// duplicate it stops and returns ErrDuplicate with an empty Built, so no
// partially built table or store ever reaches the caller (construction is
// atomic from the host's point of view).
func BuildSlice(keys []any) (Built, error) {
	return Build(sliceSeq(keys))
}

// Build inserts every element yielded by seq, in order, stopping at the
// first duplicate or hashing failure.
func Build(seq iter.Seq[any]) (Built, error) {
	policy := hashpolicy.New(hashpolicy.Generic)
	store := keystore.NewOwned()
	tbl := rawtable.New(policy, store.Ptr)

	var buildErr error
	for key := range seq {
		pos, err := insertOne(tbl, store, policy, key)
		if err != nil {
			buildErr = err
			break
		}
		_ = pos
	}
	if buildErr != nil {
		return Built{}, buildErr
	}
	return Built{Table: tbl, Store: store}, nil
}

// BuildFallible is Build's variant for host iterators that can themselves
// fail mid-sequence (e.g. a generator backed by I/O); errSeq yields
// (value, error) pairs and a non-nil error aborts the build immediately,
// propagated unchanged per spec.md §4.D.
func BuildFallible(errSeq iter.Seq2[any, error]) (Built, error) {
	policy := hashpolicy.New(hashpolicy.Generic)
	store := keystore.NewOwned()
	tbl := rawtable.New(policy, store.Ptr)

	for key, err := range errSeq {
		if err != nil {
			return Built{}, err
		}
		if _, insErr := insertOne(tbl, store, policy, key); insErr != nil {
			return Built{}, insErr
		}
	}
	return Built{Table: tbl, Store: store}, nil
}

func insertOne(tbl *rawtable.Table, store keystore.Appender, policy hashpolicy.Policy, key any) (pos int, err error) {
	defer func() {
		if r := recover(); r != nil {
			if uh, ok := r.(*hashpolicy.ErrUnhashable); ok {
				err = uh
				return
			}
			panic(r)
		}
	}()

	boxed := key
	idx := store.Append(boxed)
	ptr := store.Ptr(idx)
	assigned, dup := tbl.Insert(ptr)
	if dup {
		return 0, fmt.Errorf("%w: %v", ErrDuplicate, key)
	}
	return assigned, nil
}

func sliceSeq(keys []any) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, k := range keys {
			if !yield(k) {
				return
			}
		}
	}
}
