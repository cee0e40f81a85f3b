package users

import (
	"context"
	"database/sql"
	"testing"

	"focusd/internal/common"

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
CREATE TABLE user (
  id INTEGER PRIMARY KEY,
  ai_opt_in INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)
	return db
}

func TestAIOptIn_UnknownUser(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.AIOptIn(context.Background(), 42)
	require.ErrorIs(t, err, common.ErrorUserNotFound)
}

func TestEnsure_DefaultsToNoConsent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Ensure(ctx, 1))

	optIn, err := r.AIOptIn(ctx, 1)
	require.NoError(t, err)
	assert.False(t, optIn)

	// Ensure must not reset an existing decision.
	require.NoError(t, r.SetAIOptIn(ctx, 1, true))
	require.NoError(t, r.Ensure(ctx, 1))

	optIn, err = r.AIOptIn(ctx, 1)
	require.NoError(t, err)
	assert.True(t, optIn)
}

func TestSetAIOptIn_Toggle(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.SetAIOptIn(ctx, 7, true))
	optIn, err := r.AIOptIn(ctx, 7)
	require.NoError(t, err)
	assert.True(t, optIn)

	require.NoError(t, r.SetAIOptIn(ctx, 7, false))
	optIn, err = r.AIOptIn(ctx, 7)
	require.NoError(t, err)
	assert.False(t, optIn)
}
