package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inboxguard/spamcheck/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleEntries() []core.HistoryEntry {
	return []core.HistoryEntry{
		{
			Timestamp:  time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
			IsSpam:     true,
			Confidence: 85,
			Signals:    []string{"free", "prize"},
			Text:       "win a free prize",
		},
		{
			Timestamp:  time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC),
			IsSpam:     false,
			Confidence: 5,
			Signals:    []string{},
			Text:       "meeting moved to 3pm",
		},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, s.Save(sampleEntries()))
	loaded, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), loaded)
	require.NoError(t, s.Close())
}

func TestMemoryStoreCopiesSnapshot(t *testing.T) {
	s := NewMemoryStore()
	entries := sampleEntries()
	require.NoError(t, s.Save(entries))

	entries[0].Text = "mutated"
	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "win a free prize", loaded[0].Text)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history", "spam-history.json")
	s, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	// Missing file reads as empty history
	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, s.Save(sampleEntries()))
	loaded, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), loaded)

	// Save overwrites, leaving no temp file behind
	require.NoError(t, s.Save(nil))
	loaded, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spam-history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	_, err = s.Load()
	assert.Error(t, err)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spam-history.db")
	s, err := NewSQLiteStore(path, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, s.Save(sampleEntries()))
	loaded, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), loaded)

	// Snapshot replacement, not append
	require.NoError(t, s.Save(sampleEntries()[:1]))
	loaded, err = s.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}
