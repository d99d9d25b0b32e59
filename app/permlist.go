package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-permafrost/permafrost/internal/daemon"
	"github.com/go-permafrost/permafrost/internal/db/controller/permission"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(permlistCmd)
}

var permlistCmd = &cobra.Command{
	Use:   "permlist",
	Short: "List all permissions that can be assigned by a client",
	Long: `Permlist prints every permission in the store that a client may place
on a role, skipping the namespaces configured as ignored.`,
	PreRun: func(_ *cobra.Command, _ []string) {
		loadConfig()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := daemon.Open(&cfg)
		if err != nil {
			return err
		}

		perms, err := permission.List(db, cfg.IgnoredNamespaces)
		if err != nil {
			return err
		}

		for _, perm := range perms {
			cmd.Printf("%s\t%s\n", perm.Name, perm.Label)
		}

		cmd.Println(fmt.Sprintf("%d assignable permissions", len(perms)))

		return nil
	},
}
