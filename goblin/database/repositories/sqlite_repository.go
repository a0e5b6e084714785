package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/afterclass/commitgoblin/goblin/database/models"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS goblin_documents (
	id         TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteRepository stores the document as one row of goblin_documents.
type SQLiteRepository struct {
	sqlDB *sql.DB
	path  string
	id    string
}

// OpenSQLite opens (creating if needed) the SQLite file at path.
func OpenSQLite(path, documentID string) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteRepository{sqlDB: sqlDB, path: cleanPath, id: documentID}, nil
}

func (r *SQLiteRepository) Name() string { return "sqlite:" + r.path }

func (r *SQLiteRepository) Load(ctx context.Context) (*models.Document, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var body string
	err := r.sqlDB.QueryRowContext(ctx,
		`SELECT body FROM goblin_documents WHERE id = ?`, r.id,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, handleError("load", r.Name(), err)
	}
	doc, err := DecodeDocument([]byte(body))
	return doc, handleError("load", r.Name(), err)
}

func (r *SQLiteRepository) Save(ctx context.Context, doc *models.Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return handleError("save", r.Name(), err)
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err = r.sqlDB.ExecContext(ctx,
		`INSERT INTO goblin_documents (id, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		r.id, string(data), time.Now().UTC().UnixMilli(),
	)
	return handleError("save", r.Name(), err)
}

func (r *SQLiteRepository) Close() error {
	if r == nil || r.sqlDB == nil {
		return nil
	}
	return r.sqlDB.Close()
}
