package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/inboxguard/spamcheck/internal/api"
	"github.com/inboxguard/spamcheck/internal/core"
	"github.com/inboxguard/spamcheck/internal/di"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	server *api.Server,
	classifier core.RemoteClassifier,
	store core.HistoryStore,
) error {
	defer logger.Sync()

	// Start the HTTP server
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	if err := server.Stop(); err != nil {
		logger.Error("Failed to stop server", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := classifier.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close classifier", zap.Error(err))
		}
	}
	if err := store.Close(); err != nil {
		logger.Error("Failed to close history store", zap.Error(err))
	}

	logger.Info("Shutdown complete")
	return nil
}
