package cmd

import (
	"log/slog"

	"github.com/afterclass/commitgoblin/goblin"
	"github.com/spf13/cobra"
)

var seedCMD = &cobra.Command{
	Use:   "seed",
	Short: "Add missing default and catalog shop items to the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// OpenStore seeds as part of opening.
		store, err := goblin.OpenStore(cmd.Context(), *cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err = store.Save(cmd.Context()); err != nil {
			return err
		}
		slog.Info("Shop catalog is up to date",
			slog.String("type", "db"),
			slog.String("backend", store.Backend()),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCMD)
}
