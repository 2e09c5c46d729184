package store

import (
	"sync"

	"github.com/inboxguard/spamcheck/internal/core"
)

// MemoryStore is an in-memory implementation of the HistoryStore interface.
// It keeps the snapshot for the lifetime of the process only.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []core.HistoryEntry
}

// NewMemoryStore creates a new in-memory history store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the current snapshot
func (s *MemoryStore) Load() ([]core.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Save replaces the snapshot
func (s *MemoryStore) Save(entries []core.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]core.HistoryEntry, len(entries))
	copy(s.entries, entries)
	return nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
