package db

import (
	"path/filepath"
	"testing"
)

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shelfq.db")
	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer database.Close()

	if database.Path() != path {
		t.Errorf("Path() = %q, want %q", database.Path(), path)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "shelfq.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("second Migrate() error: %v", err)
	}

	var n int
	if err := database.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != len(migrationNames()) {
		t.Errorf("got %d applied migrations, want %d", n, len(migrationNames()))
	}
}
