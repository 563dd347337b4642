package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/strixcodecipher/relicsneb/internal/logger"
	"github.com/strixcodecipher/relicsneb/internal/models"
	"github.com/strixcodecipher/relicsneb/internal/repository"
)

// MaxStatusChecks bounds a single list response.
const MaxStatusChecks = repository.MaxFindLimit

const defaultStoreTimeout = 5 * time.Second

// ErrClientNameRequired is returned when the create input has no client_name.
var ErrClientNameRequired = errors.New("client_name is required")

type StatusCheckService struct {
	repo    repository.StatusCheckRepo
	timeout time.Duration
	log     *logger.Logger

	now   func() time.Time
	newID func() string
}

func NewStatusCheckService(repo repository.StatusCheckRepo, timeout time.Duration, log *logger.Logger) *StatusCheckService {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return &StatusCheckService{
		repo:    repo,
		timeout: timeout,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// CreateStatusCheck stamps a new record with an id and the current time and
// writes it to the store exactly once.
func (s *StatusCheckService) CreateStatusCheck(ctx context.Context, in models.StatusCheckCreate) (models.StatusCheck, error) {
	if in.ClientName == nil {
		return models.StatusCheck{}, ErrClientNameRequired
	}

	sc := models.StatusCheck{
		ID:         s.newID(),
		ClientName: *in.ClientName,
		Timestamp:  s.now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.Insert(ctx, sc.ToDocument()); err != nil {
		return models.StatusCheck{}, err
	}
	return sc, nil
}

// ListStatusChecks returns up to MaxStatusChecks records in store order.
// Documents the store cannot decode or whose timestamp is unreadable are
// dropped and logged.
func (s *StatusCheckService) ListStatusChecks(ctx context.Context) ([]models.StatusCheck, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	docs, err := s.repo.Find(ctx, MaxStatusChecks)
	var decodeErr *repository.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		for _, sk := range decodeErr.Skipped {
			s.warnSkipped(sk.ID, sk.Err)
		}
	case err != nil:
		return nil, err
	}

	out := make([]models.StatusCheck, 0, len(docs))
	for _, d := range docs {
		sc, err := d.ToStatusCheck()
		if err != nil {
			s.warnSkipped(d.ID, err)
			continue
		}
		out = append(out, sc)
	}
	if len(out) > MaxStatusChecks {
		out = out[:MaxStatusChecks]
	}
	return out, nil
}

func (s *StatusCheckService) warnSkipped(id string, err error) {
	if s.log != nil {
		s.log.Warnw("status_check_skipped", "id", id, "err", err)
	}
}
