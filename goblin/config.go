package goblin

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/database"
	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads path (if present), then .env, then environment overrides.
// Environment variables win over the file.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaultConfig()
	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("Config file not found, using defaults and environment",
			slog.String("type", "sys"),
			slog.String("path", path),
		)
	default:
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	if err = env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Store: database.StoreOptions{
			Driver:          database.DriverJSON,
			Path:            config.DefaultDataFile,
			SQLitePath:      config.DefaultSQLiteFile,
			MongoDatabase:   config.DefaultMongoDatabase,
			MongoCollection: config.DefaultMongoCollection,
			DocumentID:      config.DefaultDocumentID,
		},
		DB: database.DBConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "commitgoblin",
			PoolSize: 10,
		},
		Spaces: SpacesConfig{
			Prefix:   config.DefaultSpacesBackupPrefix,
			Schedule: config.DefaultBackupSchedule,
		},
		Notifier: NotifierConfig{
			Rate:  config.DefaultNotifierRate,
			Burst: config.DefaultNotifierBurst,
		},
	}
}

// Validate reports settings the bot cannot run without.
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return errors.New("missing bot token: set [bot] token or DISCORD_TOKEN")
	}
	return nil
}

type Config struct {
	Log      LogConfig             `toml:"log"`
	Bot      BotConfig             `toml:"bot"`
	Store    database.StoreOptions `toml:"store"`
	DB       database.DBConfig     `toml:"db"`
	Spaces   SpacesConfig          `toml:"spaces"`
	HTTP     HTTPConfig            `toml:"http"`
	Shop     ShopConfig            `toml:"shop"`
	Notifier NotifierConfig        `toml:"notifier"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token" env:"DISCORD_TOKEN"`
	// ChannelID receives public announcements and session messages. Zero
	// means the channel the command was used in.
	ChannelID snowflake.ID `toml:"channel_id" env:"COMMITGOBLIN_CHANNEL_ID"`
	// AdminRole grants admin commands in addition to the Administrator
	// permission.
	AdminRole snowflake.ID `toml:"admin_role"`
}

type LogConfig struct {
	Level     string `toml:"level" env:"GOBLIN_LOG_LEVEL"`
	Format    string `toml:"format"`
	AddSource bool   `toml:"add_source"`
	NoColor   bool   `toml:"no_color" env:"NO_COLOR"`
}

type SpacesConfig struct {
	Key      string `toml:"key" env:"SPACES_KEY"`
	Secret   string `toml:"secret" env:"SPACES_SECRET"`
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
	Prefix   string `toml:"prefix"`
	Schedule string `toml:"schedule"`
}

// Enabled reports whether backups are configured.
func (s SpacesConfig) Enabled() bool {
	return s.Key != "" && s.Secret != "" && s.Region != "" && s.Bucket != ""
}

// HTTPConfig controls the read-only status API. An empty Addr disables it.
type HTTPConfig struct {
	Addr         string `toml:"addr" env:"GOBLIN_HTTP_ADDR"`
	AllowOrigins string `toml:"allow_origins"`
}

type ShopConfig struct {
	CatalogFile string `toml:"catalog_file"`
}

type NotifierConfig struct {
	Rate  float64 `toml:"rate"`
	Burst int     `toml:"burst"`
}
