package app

import (
	"github.com/spf13/cobra"

	"github.com/go-permafrost/permafrost/internal/daemon"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the database schema and seed initial data",
	Long: `Migrate creates or updates the permafrost database schema, registers
every permission referenced by the configured categories and seeds a locked
default role per category plus an initial admin user.`,
	PreRun: func(_ *cobra.Command, _ []string) {
		loadConfig()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := daemon.Open(&cfg)
		if err != nil {
			return err
		}

		return daemon.Seed(&cfg, db, reg)
	},
}
