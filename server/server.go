// Package server wires the session store and the HTTP protocol server
// together and owns their lifecycle.
package server

import (
	"context"
	"time"

	"github.com/gear6io/sift/pkg/errors"
	"github.com/gear6io/sift/server/config"
	"github.com/gear6io/sift/server/protocols/http"
	"github.com/gear6io/sift/server/session"
	"github.com/rs/zerolog"
)

// Package-specific error codes for server
var (
	ErrHTTPServerCreation = errors.MustNewCode("server.http_creation_failed")
	ErrHTTPServerStart    = errors.MustNewCode("server.http_start_failed")
)

// Server is the top-level service: one session store shared by one HTTP
// protocol server.
type Server struct {
	config     *config.Config
	logger     zerolog.Logger
	sessions   *session.Store
	httpServer *http.Server
	ctx        context.Context
	cancel     context.CancelFunc
	startTime  time.Time
}

// New creates a server instance from a validated configuration.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	ctx, cancel := context.WithCancel(context.Background())

	sessions := session.NewStore(&cfg.Session, logger)

	httpServer, err := http.NewServer(cfg, sessions, logger)
	if err != nil {
		cancel()
		sessions.Stop()
		return nil, errors.New(ErrHTTPServerCreation, "failed to create HTTP server", err)
	}

	return &Server{
		config:     cfg,
		logger:     logger.With().Str("component", "server").Logger(),
		sessions:   sessions,
		httpServer: httpServer,
		ctx:        ctx,
		cancel:     cancel,
		startTime:  time.Now(),
	}, nil
}

// Start starts the HTTP server and reports the bound address.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info().Msg("Starting sift server...")

	if err := s.httpServer.Start(ctx); err != nil {
		return errors.New(ErrHTTPServerStart, "failed to start HTTP server", err)
	}

	s.logger.Info().
		Str("address", s.config.GetHTTPAddress()).
		Int("port", s.config.GetHTTPPort()).
		Int("session_ttl_minutes", s.config.Session.TTLMinutes).
		Int("max_sessions", s.config.Session.MaxSessions).
		Msg("Server started")

	return nil
}

// Shutdown stops the HTTP server, then releases all sessions. The
// ordering matters: no handler may touch the store after it stops.
func (s *Server) Shutdown() error {
	s.logger.Info().Msg("Shutting down server...")

	s.cancel()

	if err := s.httpServer.Stop(); err != nil {
		s.logger.Error().Err(err).Msg("Error stopping HTTP server")
	}

	s.sessions.Stop()

	s.logger.Info().
		Str("uptime", s.GetUptime().String()).
		Msg("Graceful shutdown completed")

	return nil
}

// GetUptime returns the time since the server was created.
func (s *Server) GetUptime() time.Duration {
	return time.Since(s.startTime)
}
