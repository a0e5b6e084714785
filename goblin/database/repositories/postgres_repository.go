package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/uptrace/bun"
)

// PostgresRepository stores the document as a jsonb row through bun.
type PostgresRepository struct {
	db *bun.DB
	id string
}

// NewPostgresRepository creates the goblin_documents table if it is missing.
func NewPostgresRepository(ctx context.Context, db *bun.DB, documentID string) (*PostgresRepository, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := db.NewCreateTable().
		Model((*models.DocumentRecord)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, handleError("create_table", "postgres", err)
	}
	return &PostgresRepository{db: db, id: documentID}, nil
}

func (r *PostgresRepository) Name() string { return "postgres:" + r.id }

func (r *PostgresRepository) Load(ctx context.Context) (*models.Document, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	record := new(models.DocumentRecord)
	err := r.db.NewSelect().
		Model(record).
		Where("id = ?", r.id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, handleError("load", r.Name(), err)
	}
	doc, err := DecodeDocument(record.Body)
	return doc, handleError("load", r.Name(), err)
}

func (r *PostgresRepository) Save(ctx context.Context, doc *models.Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return handleError("save", r.Name(), err)
	}
	record := &models.DocumentRecord{ID: r.id, Body: data}
	touch(&record.UpdatedAt)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err = r.db.NewInsert().
		Model(record).
		On("CONFLICT (id) DO UPDATE").
		Set("body = EXCLUDED.body").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return handleError("save", r.Name(), err)
}

// Close is a no-op; the connection is owned by database.DB.
func (r *PostgresRepository) Close() error { return nil }
