package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/database/repositories"
)

// Store drivers.
const (
	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type StoreOptions struct {
	Driver          string `toml:"driver" env:"GOBLIN_STORE_DRIVER"`
	Path            string `toml:"path" env:"GOBLIN_DATA_FILE"`
	SQLitePath      string `toml:"sqlite_path"`
	MongoURI        string `toml:"mongo_uri" env:"GOBLIN_MONGO_URI"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
	DocumentID      string `toml:"document_id"`
}

// OpenRepository opens the backend selected by opts.Driver. pg is only used
// by the postgres driver.
func OpenRepository(ctx context.Context, opts StoreOptions, pg DBConfig) (repositories.DocumentRepository, error) {
	id := opts.DocumentID
	if id == "" {
		id = config.DefaultDocumentID
	}

	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverJSON:
		path := opts.Path
		if path == "" {
			path = config.DefaultDataFile
		}
		return repositories.NewJSONRepository(path)
	case DriverSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = config.DefaultSQLiteFile
		}
		return repositories.OpenSQLite(path, id)
	case DriverPostgres:
		db, err := New(ctx, pg)
		if err != nil {
			return nil, err
		}
		repo, err := repositories.NewPostgresRepository(ctx, db.BunDB(), id)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &ownedRepository{DocumentRepository: repo, db: db}, nil
	case DriverMongo:
		return repositories.OpenMongo(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection, id)
	case DriverMemory:
		return repositories.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

// ParseTarget reads a "driver:location" string such as "json:data.json",
// "sqlite:goblin.db", "mongo:mongodb://host/db" or plain "postgres".
func ParseTarget(target string) (StoreOptions, error) {
	driver, location, _ := strings.Cut(strings.TrimSpace(target), ":")
	opts := StoreOptions{Driver: strings.ToLower(driver)}
	switch opts.Driver {
	case DriverJSON:
		opts.Path = location
	case DriverSQLite:
		opts.SQLitePath = location
	case DriverMongo:
		opts.MongoURI = location
	case DriverPostgres, DriverMemory:
	default:
		return StoreOptions{}, fmt.Errorf("unknown store target %q", target)
	}
	return opts, nil
}

// ownedRepository closes the connection it was opened with.
type ownedRepository struct {
	repositories.DocumentRepository
	db *DB
}

func (r *ownedRepository) Close() error {
	err := r.DocumentRepository.Close()
	r.db.Close()
	return err
}
