package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gear6io/sift/cli"
	"github.com/rs/zerolog"
)

func main() {
	logger := setupLogger()

	ctx := cli.WithLogger(context.Background(), logger)

	logger.Info().Str("cmd", "main").Msg("Starting sift CLI")

	if err := cli.ExecuteWithContext(ctx); err != nil {
		// Cobra already printed the error; the log line keeps the
		// failure next to the command trail.
		logger.Error().Str("cmd", "main").Err(err).Msg("CLI execution failed")
		os.Exit(1)
	}

	logger.Info().Str("cmd", "main").Msg("sift CLI completed successfully")
}

// setupLogger initializes zerolog with file output. The terminal stays
// reserved for command output.
func setupLogger() zerolog.Logger {
	logFile := getLogFilePath()

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		os.Exit(1)
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(file).With().
		Timestamp().
		Str("app", "sift").
		Logger()

	return logger
}

// getLogFilePath puts sift.log next to the server config when one is
// found, falling back to the working directory.
func getLogFilePath() string {
	if projectRoot := findProjectRoot(); projectRoot != "" {
		return filepath.Join(projectRoot, "sift.log")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(os.TempDir(), "sift.log")
	}

	return filepath.Join(cwd, "sift.log")
}

// findProjectRoot walks up from the working directory looking for a
// sift-server.yml.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, cli.DefaultConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
