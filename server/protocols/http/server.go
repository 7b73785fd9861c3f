// Package http exposes the session and table operations over HTTP.
// Every response is JSON except /download, which streams the exported
// file. Errors leave the process as a typed envelope with a stable
// code, mapped onto a status by the table in errors.go.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gear6io/sift/server/config"
	"github.com/gear6io/sift/server/session"
	"github.com/rs/zerolog"
)

const serverVersion = "0.1.0"

// Server represents the HTTP protocol server
type Server struct {
	cfg      *config.Config
	sessions *session.Store
	logger   zerolog.Logger
	server   *http.Server
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, sessions *session.Store, logger zerolog.Logger) (*Server, error) {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		cfg:      cfg,
		sessions: sessions,
		logger:   logger.With().Str("component", "http-server").Logger(),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Handler builds the route table with middleware applied. Exposed so
// tests can drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("POST /clean", s.handleClean)
	mux.HandleFunc("POST /filter", s.handleFilter)
	mux.HandleFunc("POST /plot", s.handlePlot)
	mux.HandleFunc("GET /stats/{session_id}", s.handleStats)
	mux.HandleFunc("GET /download/{session_id}", s.handleDownload)
	mux.HandleFunc("DELETE /session/{session_id}", s.handleDeleteSession)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /info", s.handleInfo)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	return s.withRequestID(s.withCORS(mux))
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := s.cfg.GetHTTPAddr()
	s.logger.Info().Str("address", addr).Msg("Starting HTTP server")

	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	// Start server in goroutine
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	s.logger.Info().Msg("HTTP server started successfully")
	return nil
}

// Stop stops the HTTP server
func (s *Server) Stop() error {
	s.logger.Info().Msg("Stopping HTTP server")

	s.cancel()

	if s.server != nil {
		// Create a context with timeout for graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
	}

	// Wait for all goroutines to finish
	s.wg.Wait()

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"server":    "sift-http",
	})
}

// handleStatus handles status requests
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "running",
		"server":   "http",
		"sessions": s.sessions.Stats(),
	})
}

// handleInfo handles server information requests
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"server":   "sift-http",
		"version":  serverVersion,
		"protocol": "HTTP/1.1",
		"endpoints": []string{
			"POST /upload - Upload a CSV file, returns a session handle",
			"POST /clean - Drop or fill missing values",
			"POST /filter - Keep rows matching a predicate",
			"POST /plot - Aggregate a column pair for charting",
			"GET /stats/{session_id} - Descriptive statistics",
			"GET /download/{session_id} - Export the current table (csv or parquet)",
			"DELETE /session/{session_id} - Release a session",
			"GET /status - Server status",
			"GET /info - Server information",
			"GET /health - Health check",
		},
	})
}

// handleRoot describes the service for anyone probing the bare URL.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"service":     "sift",
		"version":     serverVersion,
		"description": "Session-based CSV cleaning, filtering, charting and statistics",
	})
}
