package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/afterclass/commitgoblin/goblin"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "goblinctl",
	Short:         "Maintenance tasks for the CommitGoblin store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

// loadConfig reads the config and installs its logger. The bot token is not
// required for maintenance commands.
func loadConfig() (*goblin.Config, error) {
	cfg, err := goblin.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(cfg.Log.Handler()))
	return cfg, nil
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("Command failed", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(1)
	}
}
