package testutil

import (
	"context"
	"database/sql"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
	"product-console/migrations"
	"testing"
)

// NewTestDB opens an in-memory SQLite database with products_info migrated.
// The pool is pinned to one connection so every query sees the same memory database.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		db.Close()
	})

	err = migrations.AutoMigrateProducts(context.Background(), db, goose.DialectSQLite3, 0)
	require.NoError(t, err)

	return db
}
