package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/afterclass/commitgoblin/goblin/config"
	"github.com/afterclass/commitgoblin/goblin/database/models"
)

//go:generate go run go.uber.org/mock/mockgen -destination=mock/repository.go -package=mock . DocumentRepository

// DocumentRepository persists the whole economy document as one unit.
type DocumentRepository interface {
	// Load returns ErrNoDocument when nothing has been stored yet and an error
	// wrapping ErrMalformedDocument when the stored bytes do not decode.
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
	Name() string
	Close() error
}

var (
	ErrNoDocument        = errors.New("no stored document")
	ErrMalformedDocument = errors.New("malformed document")
)

// RepositoryError represents a backend-level failure
type RepositoryError struct {
	Operation string
	Backend   string
	Err       error
}

func (re *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s on %s: %v", re.Operation, re.Backend, re.Err)
}

func (re *RepositoryError) Unwrap() error {
	return re.Err
}

func handleError(operation, backend string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNoDocument) {
		return err
	}
	return &RepositoryError{Operation: operation, Backend: backend, Err: err}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, config.StoreOperationTimeout)
}

// EncodeDocument renders doc in the on-disk JSON layout.
func EncodeDocument(doc *models.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// DecodeDocument parses and normalises a stored document.
func DecodeDocument(data []byte) (*models.Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedDocument)
	}
	doc := models.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	doc.Normalize()
	return doc, nil
}

func touch(t *time.Time) {
	*t = time.Now().UTC()
}
