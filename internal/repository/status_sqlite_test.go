package repository

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/strixcodecipher/relicsneb/internal/models"
	"github.com/strixcodecipher/relicsneb/internal/repository/db"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func TestStatusSQLite_Insert(t *testing.T) {
	t.Parallel()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer conn.Close()

	repo := NewStatusSQLite(conn)
	doc := models.StatusCheckDocument{ID: "id-1", ClientName: "alice", Timestamp: "2025-01-01T10:00:00Z"}

	mock.ExpectExec(regexp.QuoteMeta(insertStatusCheckSQL)).
		WithArgs("id-1", "alice", "2025-01-01T10:00:00Z").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Insert(ctx(t), doc); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestStatusSQLite_Insert_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		dbErr error
	}{
		{name: "db down", dbErr: errors.New("down")},
		{name: "constraint text without sqlite error", dbErr: errors.New("down: UNIQUE constraint failed: status_checks.id")},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			conn, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock new: %v", err)
			}
			defer conn.Close()

			mock.ExpectExec("INSERT INTO status_checks").WillReturnError(tc.dbErr)

			err = NewStatusSQLite(conn).Insert(ctx(t), models.StatusCheckDocument{ID: "dup"})
			if err == nil {
				t.Fatalf("expected error")
			}
			if errors.Is(err, ErrDuplicateID) {
				t.Fatalf("only sqlite constraint codes mark duplicates: %v", err)
			}
			if !strings.Contains(err.Error(), "down") {
				t.Fatalf("cause lost: %v", err)
			}
		})
	}
}

func TestStatusSQLite_Insert_DuplicateID(t *testing.T) {
	t.Parallel()

	conn, err := db.InitDB(filepath.Join(t.TempDir(), "dup.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	repo := NewStatusSQLite(conn)
	doc := models.StatusCheckDocument{ID: "same", ClientName: "alice", Timestamp: "2025-01-01T00:00:00Z"}
	if err := repo.Insert(ctx(t), doc); err != nil {
		t.Fatalf("first Insert: %v", err)
	}

	err = repo.Insert(ctx(t), doc)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	var se *sqlite.Error
	if !errors.As(err, &se) || se.Code() != sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
		t.Fatalf("expected primary key violation, got %v", err)
	}
}

func TestStatusSQLite_Find(t *testing.T) {
	t.Parallel()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer conn.Close()

	rows := sqlmock.NewRows([]string{"id", "client_name", "timestamp"}).
		AddRow("1", "alice", "2025-01-01T10:00:00Z").
		AddRow("2", "bob", "garbage")

	mock.ExpectQuery(regexp.QuoteMeta(selectStatusChecksSQL)).
		WithArgs(MaxFindLimit).
		WillReturnRows(rows)

	got, err := NewStatusSQLite(conn).Find(ctx(t), 5000)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].Timestamp != "garbage" {
		t.Fatalf("unexpected docs: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestStatusSQLite_Find_QueryError(t *testing.T) {
	t.Parallel()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery("SELECT id, client_name, timestamp FROM status_checks").
		WithArgs(10).
		WillReturnError(errors.New("locked"))

	if _, err := NewStatusSQLite(conn).Find(ctx(t), 10); err == nil {
		t.Fatalf("expected query error")
	}
}

func TestStatusSQLite_RealFile(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "status.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	repo := NewStatusSQLite(conn)
	for _, id := range []string{"c", "a", "b"} {
		if err := repo.Insert(ctx(t), models.StatusCheckDocument{ID: id, ClientName: "n-" + id, Timestamp: "2025-01-01T00:00:00Z"}); err != nil {
			t.Fatalf("Insert %s: %v", id, err)
		}
	}
	if err := repo.Insert(ctx(t), models.StatusCheckDocument{ID: "a", ClientName: "again", Timestamp: "2025-01-01T00:00:00Z"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	got, err := repo.Find(ctx(t), 2)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "a" {
		t.Fatalf("expected insertion order limited to 2, got %+v", got)
	}
}
