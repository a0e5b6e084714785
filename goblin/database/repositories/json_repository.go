package repositories

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/afterclass/commitgoblin/goblin/database/models"
)

// JSONRepository keeps the document in a single flat file, fully rewritten on
// every save.
type JSONRepository struct {
	path string
}

func NewJSONRepository(path string) (*JSONRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("data file path is required")
	}
	return &JSONRepository{path: filepath.Clean(path)}, nil
}

func (r *JSONRepository) Name() string { return "json:" + r.path }

func (r *JSONRepository) Load(ctx context.Context) (*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, handleError("load", r.Name(), err)
	}
	doc, err := DecodeDocument(data)
	return doc, handleError("load", r.Name(), err)
}

// Save writes to a sibling temp file and renames it over the target so a
// crash mid-write never leaves a truncated document behind.
func (r *JSONRepository) Save(ctx context.Context, doc *models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeDocument(doc)
	if err != nil {
		return handleError("save", r.Name(), err)
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return handleError("save", r.Name(), err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return handleError("save", r.Name(), err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return handleError("save", r.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return handleError("save", r.Name(), err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return handleError("save", r.Name(), err)
	}
	return nil
}

func (r *JSONRepository) Close() error { return nil }
