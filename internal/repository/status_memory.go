package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/strixcodecipher/relicsneb/internal/models"
)

// StatusMemory keeps documents in process memory. Used for local runs and tests.
type StatusMemory struct {
	mu   sync.RWMutex
	docs []models.StatusCheckDocument
	ids  map[string]struct{}
}

func NewStatusMemory() *StatusMemory {
	return &StatusMemory{ids: make(map[string]struct{})}
}

var _ StatusCheckRepo = (*StatusMemory)(nil)

func (s *StatusMemory) Insert(ctx context.Context, doc models.StatusCheckDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[doc.ID]; ok {
		return fmt.Errorf("insert status check %q: %w", doc.ID, ErrDuplicateID)
	}
	s.ids[doc.ID] = struct{}{}
	s.docs = append(s.docs, doc)
	return nil
}

func (s *StatusMemory) Find(ctx context.Context, limit int) ([]models.StatusCheckDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = clampLimit(limit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.docs)
	if n > limit {
		n = limit
	}
	out := make([]models.StatusCheckDocument, n)
	copy(out, s.docs[:n])
	return out, nil
}
