package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inboxguard/spamcheck/internal/core"
	"go.uber.org/zap"
)

// FileStore persists the history snapshot as a single JSON document.
// Each Save overwrites the document atomically via a temp-file rename.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a new file-backed history store
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &FileStore{path: path, logger: logger}, nil
}

// Load reads the persisted snapshot. A missing file is an empty history,
// not an error.
func (s *FileStore) Load() ([]core.HistoryEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []core.HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var entries []core.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history file: %w", err)
	}
	return entries, nil
}

// Save overwrites the snapshot atomically
func (s *FileStore) Save(entries []core.HistoryEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace history file: %w", err)
	}

	s.logger.Debug("History snapshot persisted",
		zap.String("path", s.path),
		zap.Int("entries", len(entries)))
	return nil
}

// Close is a no-op for the file store
func (s *FileStore) Close() error {
	return nil
}
