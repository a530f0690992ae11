package automap

// errors.go defines the error taxonomy signalled across the map facade's
// boundary. Every error a caller can observe from this package traces back
// to one of these sentinels via errors.Is, even when the underlying
// failure originated in internal/genericpath or internal/typedarray.
//
// © 2025 automap authors. MIT License.

import (
	"errors"
	"fmt"

	"github.com/arnovian/automap/internal/genericpath"
	"github.com/arnovian/automap/internal/hashpolicy"
	"github.com/arnovian/automap/internal/typedarray"
)

var (
	// ErrInvalidValue is the root of the construction-failure hierarchy:
	// ErrDuplicateKey, ErrNonUnique and ErrUnsupportedArray all wrap it, so
	// a caller that only cares "was the input bad" can check
	// errors.Is(err, ErrInvalidValue) without enumerating every subtype.
	ErrInvalidValue = errors.New("automap: invalid value")

	// ErrDuplicateKey is returned when the generic construction path, or a
	// mutable map's Add/Update/Extend, sees a key equal to one already
	// present.
	ErrDuplicateKey = fmt.Errorf("automap: duplicate key: %w", ErrInvalidValue)

	// ErrNonUnique is ErrDuplicateKey's typed-array-fast-path counterpart
	// (spec.md §4.E): kept distinct so callers can tell a data-quality
	// failure in a bulk buffer apart from an ordinary duplicate during
	// incremental construction.
	ErrNonUnique = fmt.Errorf("automap: non-unique array element: %w", ErrInvalidValue)

	// ErrUnhashableKey is returned when the generic-object policy's host
	// hash or equality panics on a key (e.g. a slice or map passed where a
	// comparable value was expected).
	ErrUnhashableKey = errors.New("automap: unhashable key")

	// ErrUnsupportedArray is returned when a value offered to the
	// typed-array fast path is recognized but fails a shape or mutability
	// precondition (non-contiguous, writable, foreign byte order,
	// reshaped). The generic path is never used as a silent fallback for
	// this error.
	ErrUnsupportedArray = fmt.Errorf("automap: unsupported typed array: %w", ErrInvalidValue)

	// ErrKeyMissing is returned by MustGet and index-style access when a
	// key is absent. Get and GetDefault never return it.
	ErrKeyMissing = errors.New("automap: key missing")
)

// translateConstructionError maps an internal/genericpath or
// internal/typedarray error onto the public sentinels above, preserving
// the original error as the wrapped cause so errors.Is/As still reaches
// it if a caller needs the detail.
func translateConstructionError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, genericpath.ErrDuplicate):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case errors.As(err, new(*hashpolicy.ErrUnhashable)):
		return fmt.Errorf("%w: %w", ErrUnhashableKey, err)
	case errors.Is(err, typedarray.ErrNonUnique):
		return fmt.Errorf("%w: %w", ErrNonUnique, err)
	case errors.Is(err, typedarray.ErrUnsupportedArray):
		return fmt.Errorf("%w: %w", ErrUnsupportedArray, err)
	default:
		return err
	}
}

// errorsIsDuplicate reports whether err originated from the generic
// path's duplicate-key check, used to drive the build-duplicates metric
// without double-counting unhashable-key failures.
func errorsIsDuplicate(err error) bool {
	return errors.Is(err, genericpath.ErrDuplicate)
}
