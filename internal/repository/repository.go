package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/strixcodecipher/relicsneb/internal/models"
)

// MaxFindLimit caps every bounded read.
const MaxFindLimit = 1000

// ErrDuplicateID is returned when a document with the same id already exists.
var ErrDuplicateID = errors.New("document with this id already exists")

// SkippedDocument is a stored document Find could not decode.
type SkippedDocument struct {
	ID  string
	Err error
}

// DecodeError reports the documents dropped by a Find call. It does not
// invalidate the documents returned alongside it.
type DecodeError struct {
	Skipped []SkippedDocument
}

func (e *DecodeError) Error() string {
	if len(e.Skipped) == 1 {
		return fmt.Sprintf("decode status check %q: %v", e.Skipped[0].ID, e.Skipped[0].Err)
	}
	return fmt.Sprintf("%d status check documents could not be decoded", len(e.Skipped))
}

func (e *DecodeError) skip(id string, err error) {
	e.Skipped = append(e.Skipped, SkippedDocument{ID: id, Err: err})
}

func (e *DecodeError) errOrNil() error {
	if len(e.Skipped) == 0 {
		return nil
	}
	return e
}

// StatusCheckRepo is the document store contract for status checks.
type StatusCheckRepo interface {
	// Insert stores one document and returns once the store accepted it.
	Insert(ctx context.Context, doc models.StatusCheckDocument) error
	// Find returns up to limit documents in store-native order. Documents
	// the store cannot decode are left out and reported as a *DecodeError
	// returned together with the rest.
	Find(ctx context.Context, limit int) ([]models.StatusCheckDocument, error)
}

// Repository aggregates the store-backed repositories and owns the handle
// they share.
type Repository struct {
	StatusChecks StatusCheckRepo

	closer func(ctx context.Context) error
}

// NewRepository wraps a status check repo. closer may be nil.
func NewRepository(statusChecks StatusCheckRepo, closer func(ctx context.Context) error) *Repository {
	return &Repository{StatusChecks: statusChecks, closer: closer}
}

// Close releases the underlying store connection.
func (r *Repository) Close(ctx context.Context) error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer(ctx)
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxFindLimit {
		return MaxFindLimit
	}
	return limit
}
