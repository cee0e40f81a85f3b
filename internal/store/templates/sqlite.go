package templates

import (
	"context"
	"database/sql"
	"errors"
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

func (r *SQLiteRepository) Set(ctx context.Context, userID int64, name, body string) error {
	query := `INSERT INTO prompt_templates (user_id, name, template) VALUES (?, ?, ?)
			ON CONFLICT(user_id, name) DO UPDATE SET template = excluded.template`

	if _, err := r.db.ExecContext(ctx, query, userID, name, body); err != nil {
		return fmt.Errorf("error saving template: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, userID int64, name string) (string, bool, error) {
	query := `SELECT template FROM prompt_templates WHERE user_id = ? AND name = ?`

	var body string
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error loading template: %w", err)
	}
	return body, true, nil
}

func (r *SQLiteRepository) List(ctx context.Context, userID int64) ([]models.Template, error) {
	query := `SELECT name, template FROM prompt_templates WHERE user_id = ? ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing templates: %w", err)
	}
	defer rows.Close()

	var result []models.Template
	for rows.Next() {
		t := models.Template{UserID: userID}
		if err := rows.Scan(&t.Name, &t.Body); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
