package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inboxguard/spamcheck/internal/adapters/store"
	"github.com/inboxguard/spamcheck/internal/config"
	"github.com/inboxguard/spamcheck/internal/core"
	"go.uber.org/zap"
)

// StoreFactory creates history stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateHistoryStore creates a history store based on the configuration
func (f *StoreFactory) CreateHistoryStore() (core.HistoryStore, error) {
	historyCfg := f.cfg.GetHistory()

	switch historyCfg.Store {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(historyCfg.FilePath, f.logger)
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(historyCfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(historyCfg.SQLitePath, f.logger)
	case "mysql":
		return store.NewMySQLStore(historyCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported history store: %s", historyCfg.Store)
	}
}

// GetHistoryLimit returns the configured ledger capacity
func (f *StoreFactory) GetHistoryLimit() int {
	return f.cfg.GetHistory().Limit
}
