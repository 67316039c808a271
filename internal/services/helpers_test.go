package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/isdelr/watchlist/internal/database"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T, migrate func(*sql.DB) error) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrate(db))
	return db
}

func strPtr(s string) *string { return &s }
