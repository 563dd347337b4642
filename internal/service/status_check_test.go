package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/strixcodecipher/relicsneb/internal/models"
	"github.com/strixcodecipher/relicsneb/internal/repository"
)

// fakeStatusRepo is a minimal stub that satisfies repository.StatusCheckRepo.
type fakeStatusRepo struct {
	inserted  []models.StatusCheckDocument
	insertErr error

	docs      []models.StatusCheckDocument
	findErr   error
	findLimit int
	findCalls int

	deadlineSet bool
}

func (f *fakeStatusRepo) Insert(ctx context.Context, doc models.StatusCheckDocument) error {
	_, f.deadlineSet = ctx.Deadline()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, doc)
	return nil
}

func (f *fakeStatusRepo) Find(ctx context.Context, limit int) ([]models.StatusCheckDocument, error) {
	_, f.deadlineSet = ctx.Deadline()
	f.findCalls++
	f.findLimit = limit
	return f.docs, f.findErr
}

func strPtr(s string) *string { return &s }

func TestStatusCheckService_Create(t *testing.T) {
	t.Parallel()

	repo := &fakeStatusRepo{}
	svc := NewStatusCheckService(repo, time.Second, nil)
	fixed := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	svc.now = func() time.Time { return fixed }
	svc.newID = func() string { return "id-1" }

	got, err := svc.CreateStatusCheck(context.Background(), models.StatusCheckCreate{ClientName: strPtr("alice")})
	if err != nil {
		t.Fatalf("CreateStatusCheck: %v", err)
	}
	if got.ID != "id-1" || got.ClientName != "alice" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !got.Timestamp.Equal(fixed) || got.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp = %v", got.Timestamp)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected exactly one write, got %d", len(repo.inserted))
	}
	if repo.inserted[0].Timestamp != "2025-05-01T06:00:00Z" {
		t.Fatalf("stored timestamp = %q", repo.inserted[0].Timestamp)
	}
	if !repo.deadlineSet {
		t.Fatalf("store call should run under a timeout")
	}
}

func TestStatusCheckService_Create_EmptyNameAllowed(t *testing.T) {
	t.Parallel()

	repo := &fakeStatusRepo{}
	got, err := NewStatusCheckService(repo, 0, nil).CreateStatusCheck(context.Background(), models.StatusCheckCreate{ClientName: strPtr("")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ClientName != "" || got.ID == "" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestStatusCheckService_Create_UniqueIDs(t *testing.T) {
	t.Parallel()

	svc := NewStatusCheckService(&fakeStatusRepo{}, time.Second, nil)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		sc, err := svc.CreateStatusCheck(context.Background(), models.StatusCheckCreate{ClientName: strPtr(fmt.Sprint("c", i))})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[sc.ID] {
			t.Fatalf("duplicate id %q", sc.ID)
		}
		seen[sc.ID] = true
	}
}

func TestStatusCheckService_Create_MissingName(t *testing.T) {
	t.Parallel()

	repo := &fakeStatusRepo{}
	_, err := NewStatusCheckService(repo, time.Second, nil).CreateStatusCheck(context.Background(), models.StatusCheckCreate{})
	if !errors.Is(err, ErrClientNameRequired) {
		t.Fatalf("expected ErrClientNameRequired, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("nothing should be persisted on validation error")
	}
}

func TestStatusCheckService_Create_RepoError(t *testing.T) {
	t.Parallel()

	repo := &fakeStatusRepo{insertErr: errors.New("db down")}
	_, err := NewStatusCheckService(repo, time.Second, nil).CreateStatusCheck(context.Background(), models.StatusCheckCreate{ClientName: strPtr("x")})
	if !errors.Is(err, repo.insertErr) {
		t.Fatalf("expected repo error to propagate; got %v", err)
	}
}

func TestStatusCheckService_List(t *testing.T) {
	t.Parallel()

	repo := &fakeStatusRepo{docs: []models.StatusCheckDocument{
		{ID: "1", ClientName: "a", Timestamp: "2025-01-01T10:00:00Z"},
		{ID: "bad", ClientName: "b", Timestamp: "not a time"},
		{ID: "2", ClientName: "c", Timestamp: "2025-01-01T09:00:00.5+00:00"},
	}}

	got, err := NewStatusCheckService(repo, time.Second, nil).ListStatusChecks(context.Background())
	if err != nil {
		t.Fatalf("ListStatusChecks: %v", err)
	}
	if repo.findCalls != 1 || repo.findLimit != MaxStatusChecks {
		t.Fatalf("expected one bounded read, calls=%d limit=%d", repo.findCalls, repo.findLimit)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("malformed record should be skipped, order kept: %+v", got)
	}
	if !repo.deadlineSet {
		t.Fatalf("store call should run under a timeout")
	}
}

func TestStatusCheckService_List_NeverExceedsMax(t *testing.T) {
	t.Parallel()

	docs := make([]models.StatusCheckDocument, MaxStatusChecks+10)
	for i := range docs {
		docs[i] = models.StatusCheckDocument{ID: fmt.Sprint(i), Timestamp: "2025-01-01T00:00:00Z"}
	}
	got, err := NewStatusCheckService(&fakeStatusRepo{docs: docs}, time.Second, nil).ListStatusChecks(context.Background())
	if err != nil {
		t.Fatalf("ListStatusChecks: %v", err)
	}
	if len(got) != MaxStatusChecks {
		t.Fatalf("expected %d, got %d", MaxStatusChecks, len(got))
	}
}

func TestStatusCheckService_List_KeepsDocsAlongsideDecodeError(t *testing.T) {
	t.Parallel()

	repo := &fakeStatusRepo{
		docs: []models.StatusCheckDocument{{ID: "1", ClientName: "a", Timestamp: "2025-01-01T10:00:00Z"}},
		findErr: &repository.DecodeError{Skipped: []repository.SkippedDocument{
			{ID: "2", Err: errors.New("timestamp has unsupported bson type 32-bit integer")},
		}},
	}

	got, err := NewStatusCheckService(repo, time.Second, nil).ListStatusChecks(context.Background())
	if err != nil {
		t.Fatalf("decode failures must not fail the list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestStatusCheckService_List_RepoError(t *testing.T) {
	t.Parallel()

	repo := &fakeStatusRepo{findErr: errors.New("unreachable")}
	if _, err := NewStatusCheckService(repo, time.Second, nil).ListStatusChecks(context.Background()); !errors.Is(err, repo.findErr) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestStatusCheckService_RoundTripThroughMemoryStore(t *testing.T) {
	t.Parallel()

	svc := NewStatusCheckService(repository.NewStatusMemory(), time.Second, nil)
	created, err := svc.CreateStatusCheck(context.Background(), models.StatusCheckCreate{ClientName: strPtr("alice")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.ListStatusChecks(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 record, got %d", len(list))
	}
	got := list[0]
	if got.ID != created.ID || got.ClientName != created.ClientName || !got.Timestamp.Equal(created.Timestamp) {
		t.Fatalf("round trip mismatch: created %+v, listed %+v", created, got)
	}
}

func repositoryForTest() *repository.Repository {
	return repository.NewRepository(repository.NewStatusMemory(), nil)
}
