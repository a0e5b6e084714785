package goblin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/database"
	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/logger"
	"github.com/afterclass/commitgoblin/goblin/services"
)

// Handler builds the slog handler described by the log section. "json"
// selects structured output; anything else uses the colored console handler.
func (c LogConfig) Handler() slog.Handler {
	level := logger.ParseLevel(c.Level)
	if strings.EqualFold(c.Format, "json") {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level, AddSource: c.AddSource})
	}
	return logger.NewHandler(logger.Options{
		Level:     level,
		AddSource: c.AddSource,
		NoColor:   c.NoColor,
	})
}

// OpenStore opens the configured backend, loads the document and seeds the
// built-in catalog plus any items from the catalog file.
func OpenStore(ctx context.Context, cfg Config) (*database.Store, error) {
	catalog, err := services.LoadCatalog(cfg.Shop.CatalogFile)
	if err != nil {
		return nil, err
	}

	repo, err := database.OpenRepository(ctx, cfg.Store, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q store: %w", cfg.Store.Driver, err)
	}

	store := database.NewStore(repo)
	if err = store.Load(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	items := models.DefaultShop(config.GoldenDevRoleName, config.DefaultRoleDurationHours)
	store.SeedDefaults(ctx, append(items, catalog...)...)
	return store, nil
}

// NewBackups builds the Spaces backup service for store, or returns nil when
// backups are not configured.
func NewBackups(ctx context.Context, cfg SpacesConfig, store *database.Store) (*services.BackupService, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	client, err := services.NewSpacesClient(ctx, cfg.Key, cfg.Secret, cfg.Region)
	if err != nil {
		return nil, err
	}
	return services.NewBackupService(client, cfg.Bucket, cfg.Prefix, store), nil
}
