package cli

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Context key types to avoid collisions
type contextKey string

const loggerKey contextKey = "logger"

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Session-based CSV cleaning, filtering, charting and statistics",
	Long: `Sift turns a CSV file into an in-memory typed table and lets you clean
missing values, filter rows, aggregate chart series and compute
descriptive statistics over it.

The inspect command works on local files without a server. The session
commands (upload, clean, filter, plot, stats, download, drop) talk to a
running sift server, which keeps every uploaded table under a session
handle until it expires.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			pterm.EnableDebugMessages()
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteWithContext runs the root command with a context carrying the
// logger for all subcommands.
func ExecuteWithContext(ctx context.Context) error {
	rootCmd.SetContext(ctx)

	logger := loggerFromContext(ctx)
	logger.Info().Str("cmd", "root").Msg("Executing root command")

	return rootCmd.Execute()
}

// WithLogger stores the logger subcommands retrieve with
// loggerFromContext.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// loggerFromContext retrieves the logger from context. Commands run
// without one, in tests for example, get a disabled logger.
func loggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("server", "127.0.0.1:2861", "sift server address for session commands")
}
