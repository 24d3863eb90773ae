// Package tablecache persists built correction-table snapshots keyed by
// their construction parameters.
//
// A Store must guarantee at-most-one-writer-visible-at-a-time semantics:
// a published entry is always complete, never a partial write. DirStore
// achieves this by writing to a temporary file and renaming it into
// place; MemStore is an in-process test double with the same contract.
package tablecache

import (
	"errors"
	"sync"
)

// ErrNotFound indicates a load of a key that has never been published.
var ErrNotFound = errors.New("tablecache: entry not found")

// Store persists opaque table snapshots under canonical parameter keys.
type Store interface {
	// Exists reports whether a fully published entry exists for key.
	Exists(key string) (bool, error)

	// Load returns the published snapshot for key.
	Load(key string) ([]byte, error)

	// AtomicStore publishes data under key. Readers must never observe
	// a partially written entry.
	AtomicStore(key string, data []byte) error
}

// MemStore is an in-memory Store for tests and single-process use.
// The zero value is ready to use.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Exists reports whether key has been stored.
func (s *MemStore) Exists(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[key]

	return ok, nil
}

// Load returns a copy of the stored snapshot.
func (s *MemStore) Load(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(data))
	copy(out, data)

	return out, nil
}

// AtomicStore publishes a copy of data under key.
func (s *MemStore) AtomicStore(key string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		s.entries = make(map[string][]byte)
	}
	s.entries[key] = stored

	return nil
}
