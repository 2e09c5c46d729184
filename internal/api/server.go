package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Server owns the HTTP surface serving the browser client
type Server struct {
	httpServer      *http.Server
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

// NewServer creates the server with its routes mounted
func NewServer(handlers *Handlers, listenAddr string, corsOrigins []string, shutdownTimeout time.Duration, logger *zap.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", handlers.HealthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", handlers.HandleAnalyze)
		r.Post("/replies", handlers.HandleReplies)
		r.Get("/history", handlers.HandleHistoryList)
		r.Delete("/history", handlers.HandleHistoryClear)
		r.Get("/history/export", handlers.HandleHistoryExport)
		r.Post("/speech/summary", handlers.HandleSpeechSummary)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    listenAddr,
			Handler: r,
		},
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
}

// Start begins serving in a background goroutine
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", zap.Error(err))
		}
	}()
	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}
