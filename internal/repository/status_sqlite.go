package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/strixcodecipher/relicsneb/internal/models"
)

type StatusSQLite struct {
	db *sql.DB
}

func NewStatusSQLite(db *sql.DB) *StatusSQLite { return &StatusSQLite{db: db} }

var _ StatusCheckRepo = (*StatusSQLite)(nil)

const (
	insertStatusCheckSQL = `INSERT INTO status_checks (id, client_name, timestamp) VALUES (?, ?, ?)`

	// rowid order is insertion order, the closest SQLite has to a natural order
	selectStatusChecksSQL = `SELECT id, client_name, timestamp FROM status_checks ORDER BY rowid LIMIT ?`
)

// Insert stores one status check document.
func (r *StatusSQLite) Insert(ctx context.Context, doc models.StatusCheckDocument) error {
	_, err := r.db.ExecContext(ctx, insertStatusCheckSQL, doc.ID, doc.ClientName, doc.Timestamp)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert status check %q: %w: %w", doc.ID, ErrDuplicateID, err)
		}
		return fmt.Errorf("insert status check %q: %w", doc.ID, err)
	}
	return nil
}

// Find returns up to limit documents in insertion order.
func (r *StatusSQLite) Find(ctx context.Context, limit int) ([]models.StatusCheckDocument, error) {
	limit = clampLimit(limit)

	rows, err := r.db.QueryContext(ctx, selectStatusChecksSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select status checks: %w", err)
	}
	defer rows.Close()

	out := make([]models.StatusCheckDocument, 0, 64)
	for rows.Next() {
		var d models.StatusCheckDocument
		if err := rows.Scan(&d.ID, &d.ClientName, &d.Timestamp); err != nil {
			return nil, fmt.Errorf("scan status check: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status checks: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}
