package database

import (
	"context"
	"errors"
	"sync"

	"github.com/afterclass/commitgoblin/goblin/database/models"
	"github.com/afterclass/commitgoblin/goblin/database/repositories"
	"github.com/afterclass/commitgoblin/goblin/errs"
	"github.com/afterclass/commitgoblin/goblin/logger"
	"github.com/afterclass/commitgoblin/goblin/metrics"
)

// Store is the in-memory authority over the economy document. Every
// mutation runs under one mutex and is followed by exactly one save.
type Store struct {
	mu   sync.Mutex
	repo repositories.DocumentRepository
	doc  *models.Document
}

func NewStore(repo repositories.DocumentRepository) *Store {
	return &Store{repo: repo, doc: models.NewDocument()}
}

// Load reads the stored document. A missing document is initialised empty
// and persisted; a malformed one is logged and replaced by an empty document.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		s.doc = doc
		return nil
	case errors.Is(err, repositories.ErrNoDocument):
		s.doc = models.NewDocument()
		logger.LogSystem("No stored document, starting empty", "backend", s.repo.Name())
		s.saveLocked(ctx, "load")
		return nil
	case errors.Is(err, repositories.ErrMalformedDocument):
		s.doc = models.NewDocument()
		logger.LogPersistence("load", s.repo.Name(), err)
		return nil
	default:
		return errs.Wrap(errs.CodePersistence, err, "load document from %s", s.repo.Name())
	}
}

// Save writes the whole document. Failures are returned to the caller.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Save(ctx, s.doc); err != nil {
		return errs.Wrap(errs.CodePersistence, err, "save document to %s", s.repo.Name())
	}
	return nil
}

// Update runs fn against the live document and saves once if fn succeeds.
// fn must validate before it mutates: a returned error skips the save but
// does not roll anything back. A failed save is logged and counted; the
// in-memory change is kept and Update still returns nil.
func (s *Store) Update(ctx context.Context, op string, fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.doc); err != nil {
		return err
	}
	s.saveLocked(ctx, op)
	return nil
}

// View gives fn read-only access to the live document. fn must not retain
// references past its return.
func (s *Store) View(fn func(doc *models.Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.doc)
}

// SeedDefaults inserts catalog entries whose IDs are absent and leaves
// present ones untouched. It persists only when something was added.
func (s *Store) SeedDefaults(ctx context.Context, items ...*models.ShopItem) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, item := range items {
		if item == nil || item.ID == "" {
			continue
		}
		if _, ok := s.doc.Shop[item.ID]; ok {
			continue
		}
		copied := *item
		s.doc.Shop[item.ID] = &copied
		added++
	}
	if added > 0 {
		s.saveLocked(ctx, "seed")
		logger.LogSystem("Seeded shop catalog", "added", added)
	}
	return added
}

// Snapshot returns the encoded document as it would be written to disk.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return repositories.EncodeDocument(s.doc)
}

// Replace swaps the live document wholesale and persists it.
func (s *Store) Replace(ctx context.Context, doc *models.Document) error {
	doc.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	if err := s.repo.Save(ctx, s.doc); err != nil {
		return errs.Wrap(errs.CodePersistence, err, "save document to %s", s.repo.Name())
	}
	return nil
}

func (s *Store) Backend() string {
	return s.repo.Name()
}

func (s *Store) Close() error {
	return s.repo.Close()
}

func (s *Store) saveLocked(ctx context.Context, op string) {
	if err := s.repo.Save(ctx, s.doc); err != nil {
		logger.LogPersistence(op, s.repo.Name(), err)
		metrics.RecordPersistenceFailure(op)
	}
}
