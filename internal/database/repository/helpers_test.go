package repository_test

import (
	"database/sql"
	"testing"

	"github.com/artur/pricewatch/internal/database"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "Failed to open test db")

	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err, "Failed to enable foreign keys")

	dbWrapper := &database.DB{DB: db}
	require.NoError(t, dbWrapper.Migrate(), "Failed to migrate")

	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(v float64) *float64 {
	return &v
}
