package keystore

import "unsafe"

// ownedStore is the generic-path key store: an amortized-growth ordered
// sequence of boxed keys (spec.md §4.C "owned sequence"). It backs every
// generic-object map and any map built incrementally via Add/Update.
type ownedStore struct {
	keys []any
}

// NewOwned returns an empty, append-only key store.
func NewOwned() Appender {
	return &ownedStore{}
}

// NewOwnedFrom returns a key store pre-populated with a copy of keys, for
// callers that already hold a verbatim key sequence and do not need to
// re-run the generic inserter (spec.md §4.F "copy-construct"). Nothing in
// this module calls it; CopyFrom fills a NewOwned store instead.
func NewOwnedFrom(keys []any) KeyStore {
	cp := make([]any, len(keys))
	copy(cp, keys)
	return &ownedStore{keys: cp}
}

func (s *ownedStore) Len() int { return len(s.keys) }

func (s *ownedStore) Ptr(i int) unsafe.Pointer {
	return unsafe.Pointer(&s.keys[i])
}

func (s *ownedStore) Boxed(i int) any { return s.keys[i] }

func (s *ownedStore) Owned() bool { return true }

func (s *ownedStore) Append(key any) int {
	s.keys = append(s.keys, key)
	return len(s.keys) - 1
}
