// File: /database/testdb.go
package database

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

// NewTestDB opens a migrated and seeded SQLite database in a temporary
// directory. The database is closed when the test finishes.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "carservice_test.db")
	db, err := Initialize(DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		_ = Close(db)
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	if err := SeedData(db); err != nil {
		t.Fatalf("seeding test database: %v", err)
	}
	return db
}
