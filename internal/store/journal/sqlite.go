package journal

import (
	"context"
	"fmt"

	"focusd/internal/dbx"
	"focusd/internal/store/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, userID int64, provider string, model *string, content string, tokens *int64) (int64, error) {
	query := `INSERT INTO journal_entries (user_id, created_at, provider, model, content, tokens)
			VALUES (?, datetime('now'), ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, userID, provider, model, content, tokens)
	if err != nil {
		return 0, fmt.Errorf("error saving journal entry: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) ListRecent(ctx context.Context, userID int64, limit int64) ([]models.JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, user_id, created_at, provider, model, content, tokens
			FROM journal_entries WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing journal entries: %w", err)
	}
	defer rows.Close()

	var result []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.CreatedAt, &e.Provider, &e.Model, &e.Content, &e.Tokens); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
