package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gear6io/sift/server"
	"github.com/gear6io/sift/server/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// DefaultConfigFile is where serve and init look for the server
// configuration when no path is given.
const DefaultConfigFile = "sift-server.yml"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sift server",
	Long: `Serve starts the HTTP server in the foreground and blocks until it
receives SIGINT or SIGTERM. Configuration comes from the --config file
when given, from ` + DefaultConfigFile + ` when present, and from
defaults otherwise.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("config", "", "path to a server configuration file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := loadServerConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := config.SetupLogger(cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		cancel()
	}()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	pterm.Info.Printfln("Serving on %s, press Ctrl+C to stop", cfg.GetHTTPAddr())

	<-ctx.Done()

	return srv.Shutdown()
}

// loadServerConfig resolves the serve configuration. An explicit path
// must exist; the default path may be absent.
func loadServerConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadConfig(configPath)
	}

	cfg, err := config.LoadConfig(DefaultConfigFile)
	if err != nil {
		pterm.Debug.Printfln("No %s, using defaults", DefaultConfigFile)
		return config.LoadDefaultConfig(), nil
	}
	return cfg, nil
}
