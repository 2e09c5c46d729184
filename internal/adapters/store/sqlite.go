package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/inboxguard/spamcheck/internal/core"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the HistoryStore interface.
// The whole snapshot is replaced in one transaction per Save, so readers
// never observe a partial history.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite history store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS spam_history (
			position INTEGER PRIMARY KEY,
			recorded_at TIMESTAMP,
			is_spam BOOLEAN,
			confidence INTEGER,
			signals TEXT,
			body TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Load reads the persisted snapshot, newest entry first
func (s *SQLiteStore) Load() ([]core.HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT recorded_at, is_spam, confidence, signals, body
		FROM spam_history
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []core.HistoryEntry{}
	for rows.Next() {
		var recordedAt string
		var entry core.HistoryEntry
		var signals string
		if err := rows.Scan(&recordedAt, &entry.IsSpam, &entry.Confidence, &signals, &entry.Text); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse recorded_at timestamp: %w", err)
		}
		entry.Timestamp = ts
		if err := json.Unmarshal([]byte(signals), &entry.Signals); err != nil {
			return nil, fmt.Errorf("failed to decode signals: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}
	return entries, nil
}

// Save overwrites the snapshot in a single transaction
func (s *SQLiteStore) Save(entries []core.HistoryEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM spam_history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO spam_history (position, recorded_at, is_spam, confidence, signals, body)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range entries {
		signals, err := json.Marshal(entry.Signals)
		if err != nil {
			return fmt.Errorf("failed to encode signals: %w", err)
		}
		if _, err := stmt.Exec(i, entry.Timestamp.Format(time.RFC3339Nano), entry.IsSpam, entry.Confidence, string(signals), entry.Text); err != nil {
			return fmt.Errorf("failed to insert history entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history snapshot: %w", err)
	}

	s.logger.Debug("History snapshot persisted", zap.Int("entries", len(entries)))
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close SQLite database: %w", err)
	}
	return nil
}
