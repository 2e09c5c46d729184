package history

import (
	"sync"

	"github.com/inboxguard/spamcheck/internal/core"
	"go.uber.org/zap"
)

// DefaultLimit is the number of entries the ledger retains
const DefaultLimit = 50

// Ledger is the bounded, newest-first record of past analyses. Entries are
// immutable once recorded; the oldest entry is silently evicted when the
// limit is exceeded. Every mutation persists a fresh snapshot, and a store
// failure leaves the ledger serving from memory for the rest of the session.
type Ledger struct {
	mu      sync.Mutex
	entries []core.HistoryEntry
	store   core.HistoryStore
	limit   int
	logger  *zap.Logger
}

// NewLedger creates a ledger backed by the given store, seeded from its
// persisted snapshot. A failed load starts the session with an empty ledger.
func NewLedger(store core.HistoryStore, limit int, logger *zap.Logger) *Ledger {
	if limit <= 0 {
		limit = DefaultLimit
	}

	l := &Ledger{
		store:  store,
		limit:  limit,
		logger: logger,
	}

	entries, err := store.Load()
	if err != nil {
		logger.Warn("Failed to load history, starting empty", zap.Error(err))
		entries = []core.HistoryEntry{}
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	l.entries = entries

	return l
}

// Record prepends an entry, evicts beyond the limit, and persists
func (l *Ledger) Record(entry core.HistoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]core.HistoryEntry{entry}, l.entries...)
	if len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}
	l.persist()
}

// List returns a copy of the entries, newest first
func (l *Ledger) List() []core.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]core.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear empties the ledger and persists the empty snapshot
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = []core.HistoryEntry{}
	l.persist()
}

// persist writes the current snapshot; callers hold the mutex
func (l *Ledger) persist() {
	if err := l.store.Save(l.entries); err != nil {
		l.logger.Error("Failed to persist history, continuing in memory", zap.Error(err))
	}
}
