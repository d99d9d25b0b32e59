// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/go-permafrost/permafrost/internal/config"
	"github.com/go-permafrost/permafrost/internal/logger"
	"github.com/go-permafrost/permafrost/internal/registry"
)

var (
	configPath string // Path to the configuration directory

	cfg config.Config
	reg *registry.Registry

	rootCmd = &cobra.Command{
		Use:   "permafrost",
		Short: "Permafrost manages client-definable, category-typed permission roles",
		Long: `Permafrost manages client-definable roles on top of a plain
group/permission store. Each role belongs to a category that fixes which
permissions are always required and which may be toggled per role; the tool
keeps every role's group inside that policy.`,
		Args: cobra.OnlyValidArgs,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration directory")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration, initializes logging and builds the
// category registry. Used by every subcommand PreRun; any failure here is a
// misconfiguration the process must not continue past.
func loadConfig() {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		panic(err)
	}

	if err = logger.Init(cfg.Log); err != nil {
		panic(err)
	}

	if reg, err = registry.New(cfg.Categories); err != nil {
		panic(err)
	}
}
