// Package journal persists generated artifacts as journal entries.
package journal

import (
	"context"

	"focusd/internal/store/models"
)

type Repository interface {
	// Insert stores a generated entry and returns its id. Content must
	// already be redacted by the caller.
	Insert(ctx context.Context, userID int64, provider string, model *string, content string, tokens *int64) (int64, error)

	// ListRecent returns up to limit entries for userID, newest first.
	ListRecent(ctx context.Context, userID int64, limit int64) ([]models.JournalEntry, error)
}
