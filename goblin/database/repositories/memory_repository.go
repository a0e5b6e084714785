package repositories

import (
	"context"
	"sync"

	"github.com/afterclass/commitgoblin/goblin/database/models"
)

// MemoryRepository keeps the encoded document in process memory. It backs
// dry runs and tests.
type MemoryRepository struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Name() string { return "memory" }

func (r *MemoryRepository) Load(ctx context.Context) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return nil, ErrNoDocument
	}
	doc, err := DecodeDocument(r.data)
	return doc, handleError("load", r.Name(), err)
}

func (r *MemoryRepository) Save(ctx context.Context, doc *models.Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return handleError("save", r.Name(), err)
	}
	r.mu.Lock()
	r.data = data
	r.mu.Unlock()
	return nil
}

// Raw returns the last saved bytes.
func (r *MemoryRepository) Raw() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]byte(nil), r.data...)
}

// SetRaw replaces the stored bytes, bypassing encoding.
func (r *MemoryRepository) SetRaw(data []byte) {
	r.mu.Lock()
	r.data = append([]byte(nil), data...)
	r.mu.Unlock()
}

func (r *MemoryRepository) Close() error { return nil }
