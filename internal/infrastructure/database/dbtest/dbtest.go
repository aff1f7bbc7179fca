// Package dbtest provides migrated throwaway databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/sangkips/laundromart-api/internal/infrastructure/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New returns a migrated SQLite database in a temporary directory.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
