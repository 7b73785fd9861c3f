package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gear6io/sift/server"
	"github.com/gear6io/sift/server/config"
	"github.com/rs/zerolog"
)

func main() {
	// Load server configuration
	cfg, err := config.LoadConfig("sift-server.yml")
	usedDefaults := err != nil
	if usedDefaults {
		cfg = config.LoadDefaultConfig()
	}

	logger, err := config.SetupLogger(cfg)
	if err != nil {
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Fatal().Err(err).Msg("Failed to set up logging")
	}
	if usedDefaults {
		logger.Info().Msg("Using default configuration")
	}

	// Create server instance
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create server")
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info().Msg("Shutting down sift server...")
		cancel()
	}()

	// Start server
	logger.Info().Msg("Starting sift server...")
	if err := srv.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}

	// Wait for shutdown signal
	<-ctx.Done()

	// Graceful shutdown
	if err := srv.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("Error during shutdown")
	}

	logger.Info().Msg("Server stopped gracefully")
}
