package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/inboxguard/spamcheck/internal/api"
	"github.com/inboxguard/spamcheck/internal/config"
	"github.com/inboxguard/spamcheck/internal/core"
	"github.com/inboxguard/spamcheck/internal/factory"
	"github.com/inboxguard/spamcheck/internal/history"
	"github.com/inboxguard/spamcheck/internal/logging"
	"github.com/inboxguard/spamcheck/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}

	// Register lexicon and local scorer
	if err := container.Provide(factory.BuildLexicon); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewLocalScorer); err != nil {
		return nil, err
	}

	// Register remote classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.RemoteClassifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register history store and ledger
	if err := container.Provide(func(f *factory.StoreFactory) (core.HistoryStore, error) {
		return f.CreateHistoryStore()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(store core.HistoryStore, f *factory.StoreFactory, logger *zap.Logger) *history.Ledger {
		return history.NewLedger(store, f.GetHistoryLimit(), logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(ledger *history.Ledger) core.HistoryRecorder {
		return ledger
	}); err != nil {
		return nil, err
	}

	// Register analysis service
	if err := container.Provide(core.NewAnalysisService); err != nil {
		return nil, err
	}

	// Register HTTP handlers and server
	if err := container.Provide(func(service *core.AnalysisService, ledger *history.Ledger, cfg *config.Config, logger *zap.Logger) *api.Handlers {
		return api.NewHandlers(service, ledger, cfg.GetScorer().DefaultSensitivity, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(handlers *api.Handlers, cfg *config.Config, logger *zap.Logger) (*api.Server, error) {
		shutdownTimeout, err := cfg.GetDuration("server.shutdown_timeout")
		if err != nil {
			shutdownTimeout = 10 * time.Second
		}
		return api.NewServer(
			handlers,
			cfg.GetString("server.listen_address"),
			cfg.GetStringSlice("server.cors_origins"),
			shutdownTimeout,
			logger,
		), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}
