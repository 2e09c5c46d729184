package core

import (
	"context"
)

// RemoteClassifier defines the interface for external classification services
type RemoteClassifier interface {
	// Classify submits text for classification and normalizes the response
	// into a Verdict. Failures are returned as *ClassificationError.
	Classify(ctx context.Context, text string) (*Verdict, error)
}

// HistoryStore persists the ledger's entries as one durable snapshot
type HistoryStore interface {
	// Load reads the persisted snapshot, newest entry first
	Load() ([]HistoryEntry, error)

	// Save overwrites the snapshot atomically
	Save(entries []HistoryEntry) error

	// Close releases any underlying resources
	Close() error
}

// HistoryRecorder is the ledger surface the analysis service needs
type HistoryRecorder interface {
	Record(entry HistoryEntry)
}
