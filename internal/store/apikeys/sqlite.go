package apikeys

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"focusd/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, userID int64, provider, ciphertext string) error {
	query := `INSERT INTO api_keys (user_id, provider, key_enc) VALUES (?, ?, ?)
			ON CONFLICT(user_id, provider) DO UPDATE SET key_enc = excluded.key_enc`

	if _, err := r.db.ExecContext(ctx, query, userID, provider, ciphertext); err != nil {
		return fmt.Errorf("error saving api key record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, userID int64, provider string) (string, bool, error) {
	query := `SELECT key_enc FROM api_keys WHERE user_id = ? AND provider = ?`

	var ciphertext string
	err := r.db.QueryRowContext(ctx, query, userID, provider).Scan(&ciphertext)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error loading api key record: %w", err)
	}
	return ciphertext, true, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, userID int64, provider string) error {
	query := `DELETE FROM api_keys WHERE user_id = ? AND provider = ?`

	if _, err := r.db.ExecContext(ctx, query, userID, provider); err != nil {
		return fmt.Errorf("error deleting api key record: %w", err)
	}
	return nil
}
