package templates

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE prompt_templates (
  user_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  template TEXT NOT NULL,
  PRIMARY KEY (user_id, name)
);
`)
	require.NoError(t, err)
	return db
}

func TestSet_InsertAndReplace(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, 1, "daily", "Summarize {{prompt}}"))

	body, ok, err := r.Get(ctx, 1, "daily")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Summarize {{prompt}}", body)

	// last write wins
	require.NoError(t, r.Set(ctx, 1, "daily", "Rewrite: {{prompt}}"))
	body, ok, err = r.Get(ctx, 1, "daily")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Rewrite: {{prompt}}", body)
}

func TestGet_Missing(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, ok, err := r.Get(context.Background(), 1, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestList_PerUser(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, 1, "daily", "a"))
	require.NoError(t, r.Set(ctx, 1, "weekly", "b"))
	require.NoError(t, r.Set(ctx, 2, "daily", "c"))

	got, err := r.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "daily", got[0].Name)
	assert.Equal(t, "weekly", got[1].Name)
}
