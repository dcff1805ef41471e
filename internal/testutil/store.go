package testutil

import (
	"path/filepath"
	"testing"

	"rem-go/internal/database"
	"rem-go/internal/database/migrations"
)

// NewTestStore creates an in-memory SQLite store with migrations applied.
// The store is automatically closed when the test completes.
func NewTestStore(t *testing.T) *database.SQLiteStore {
	t.Helper()

	sqlDB, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := migrations.Up(sqlDB); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to apply migrations: %v", err)
	}

	store := database.NewSQLiteStoreFromDB(sqlDB)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

// NewTestFileStore creates a file-backed SQLite store in a temp directory.
// Use when the test needs a real database file, such as backup round-trips.
func NewTestFileStore(t *testing.T) *database.SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "realestate.db")
	store, err := database.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := migrations.Up(store.DB()); err != nil {
		store.Close()
		t.Fatalf("failed to apply migrations: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
