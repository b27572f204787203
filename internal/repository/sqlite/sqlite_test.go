package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mjiang93/user-service/internal/domain"
	"github.com/mjiang93/user-service/internal/repository/sqlite"
)

// Verify that *sqlite.DB implements domain.Database at compile time.
var _ domain.Database = (*sqlite.DB)(nil)

// Verify that *sqlite.UserRepository implements domain.UserRepository.
var _ domain.UserRepository = (*sqlite.UserRepository)(nil)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	// Verify the file was created.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file was not created")
	}

	// Verify we can ping the database.
	if err := db.SqlDB.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}

	// Verify foreign keys are enabled.
	var fkEnabled int
	if err := db.SqlDB.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("check foreign_keys: %v", err)
	}
	if fkEnabled != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fkEnabled)
	}
}

func TestMigrate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Verify the users table exists and accepts a row.
	_, err := db.SqlDB.ExecContext(ctx,
		"INSERT INTO users (name, email) VALUES (?, ?)",
		"Test User", "test@example.com",
	)
	if err != nil {
		t.Fatalf("insert into users: %v", err)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// newTestDB already migrated once; a second run must be a no-op.
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate (idempotent): %v", err)
	}

	var count int
	err := db.SqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 migration record, got %d", count)
	}
}

func TestUniqueEmailConstraint(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.SqlDB.ExecContext(ctx,
		"INSERT INTO users (name, email) VALUES (?, ?)", "A", "same@example.com"); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	_, err := db.SqlDB.ExecContext(ctx,
		"INSERT INTO users (name, email) VALUES (?, ?)", "B", "same@example.com")
	if err == nil {
		t.Fatal("expected unique constraint violation on duplicate email")
	}
}
