package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relics.db")

	conn, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	var name string
	err = conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='status_checks'`).Scan(&name)
	if err != nil {
		t.Fatalf("status_checks table missing: %v", err)
	}

	// idempotent on an existing file
	again, err := InitDB(path)
	if err != nil {
		t.Fatalf("second InitDB: %v", err)
	}
	_ = again.Close()
}
