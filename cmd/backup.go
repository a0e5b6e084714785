package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/afterclass/commitgoblin/goblin"
	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/spf13/cobra"
)

var backupCMD = &cobra.Command{
	Use:   "backup",
	Short: "Upload one snapshot of the configured store to Spaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Spaces.Enabled() {
			return errors.New("spaces backups are not configured: set [spaces] key, secret, region and bucket")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), config.BackupUploadTimeout)
		defer cancel()

		store, err := goblin.OpenStore(ctx, *cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		backups, err := goblin.NewBackups(ctx, cfg.Spaces, store)
		if err != nil {
			return err
		}
		key, err := backups.Upload(ctx)
		if err != nil {
			return err
		}
		slog.Info("Backup uploaded",
			slog.String("type", "sys"),
			slog.String("bucket", cfg.Spaces.Bucket),
			slog.String("key", key),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCMD)
}
