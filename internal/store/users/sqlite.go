package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"focusd/internal/common"
	"focusd/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Ensure(ctx context.Context, userID int64) error {
	query := `INSERT INTO user (id, ai_opt_in) VALUES (?, 0) ON CONFLICT(id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) SetAIOptIn(ctx context.Context, userID int64, optIn bool) error {
	query := `INSERT INTO user (id, ai_opt_in) VALUES (?, ?)
			ON CONFLICT(id) DO UPDATE SET ai_opt_in = excluded.ai_opt_in`

	if _, err := r.db.ExecContext(ctx, query, userID, optIn); err != nil {
		return fmt.Errorf("error updating consent: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) AIOptIn(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT ai_opt_in FROM user WHERE id = ?`

	var optIn sql.NullBool
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&optIn)
	if errors.Is(err, sql.ErrNoRows) {
		return false, common.ErrorUserNotFound
	}
	if err != nil {
		return false, fmt.Errorf("error loading consent flag: %w", err)
	}
	// NULL means never asked, which is the same as "no".
	return optIn.Valid && optIn.Bool, nil
}
