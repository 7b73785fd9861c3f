package cli

import (
	"os"

	"github.com/gear6io/sift/pkg/errors"
	"github.com/gear6io/sift/server/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Package-specific error codes for cli
var (
	ErrConfigExists = errors.MustNewCode("cli.config_already_exists")
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default server configuration file",
	Long: `Init writes the default server configuration to ` + DefaultConfigFile + `
(or the given path) so deployments can start from a complete, commented
baseline instead of an empty file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := DefaultConfigFile
	if len(args) == 1 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Newf(ErrConfigExists, "%s already exists, pass --force to overwrite", path)
	}

	if err := config.SaveConfig(config.LoadDefaultConfig(), path); err != nil {
		return err
	}

	pterm.Success.Printfln("Configuration written to %s", path)
	return nil
}
