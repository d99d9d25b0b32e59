package app

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/go-permafrost/permafrost/internal/daemon"
	"github.com/go-permafrost/permafrost/internal/db/controller/role"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(categoriesCmd)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Infer category definitions from the roles in the database",
	Long: `Categories inspects every role per category and splits its observed
permissions into required (held by every role of the category) and optional
(held by only some). The result is printed as a ready-to-paste [categories]
TOML block for the configuration file.`,
	PreRun: func(_ *cobra.Command, _ []string) {
		loadConfig()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := daemon.Open(&cfg)
		if err != nil {
			return err
		}

		inferred, err := role.InferCategories(db, reg)
		if err != nil {
			return err
		}

		if len(inferred) == 0 {
			cmd.Println("no roles found, nothing to infer")
			return nil
		}

		enc := toml.NewEncoder(os.Stdout)

		return enc.Encode(map[string]map[string]role.InferredCategory{"categories": inferred})
	},
}
