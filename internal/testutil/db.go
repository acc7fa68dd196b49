// Package testutil provides builders and database setup for enrollment tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"

	"registrar/internal/infrastructure/sqlite"
)

// NewTestDB creates a throwaway SQLite database with the enrollment schema.
// The database lives in the test's temp directory and is closed on cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registrar.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(sqlite.Schema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
