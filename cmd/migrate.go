package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/afterclass/commitgoblin/goblin/database"
	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/database/repositories"
	"github.com/spf13/cobra"
)

var (
	migrateFrom string
	migrateTo   string
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Copy the economy document from one store backend to another",
	Example: "  goblinctl migrate --from json:data.json --to sqlite:goblin.db\n" +
		"  goblinctl migrate --from sqlite:goblin.db --to postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are the same store")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		src, err := openTarget(ctx, migrateFrom, cfg.DB)
		if err != nil {
			return err
		}
		defer src.Close()

		dst, err := openTarget(ctx, migrateTo, cfg.DB)
		if err != nil {
			return err
		}
		defer dst.Close()

		doc, err := migrate(ctx, src, dst)
		if err != nil {
			slog.Error("Migration failed", slog.String("type", "db"), slog.Any("error", err))
			return err
		}

		slog.Info("Migration completed successfully!",
			slog.String("type", "db"),
			slog.String("from", src.Name()),
			slog.String("to", dst.Name()),
			slog.Int("users", len(doc.Users)),
			slog.Int("teams", len(doc.Teams)),
			slog.Int("shop_items", len(doc.Shop)),
		)
		return nil
	},
}

func init() {
	migrateCMD.Flags().StringVar(&migrateFrom, "from", "json:data.json", "source store (driver:location)")
	migrateCMD.Flags().StringVar(&migrateTo, "to", "", "destination store (driver:location)")
	_ = migrateCMD.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCMD)
}

func openTarget(ctx context.Context, target string, pg database.DBConfig) (repositories.DocumentRepository, error) {
	opts, err := database.ParseTarget(target)
	if err != nil {
		return nil, err
	}
	return database.OpenRepository(ctx, opts, pg)
}

// migrate copies the stored document from src to dst unchanged.
func migrate(ctx context.Context, src, dst repositories.DocumentRepository) (*models.Document, error) {
	doc, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src.Name(), err)
	}
	if err = dst.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", dst.Name(), err)
	}
	return doc, nil
}
