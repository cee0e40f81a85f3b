// Package templates stores per-user prompt templates. The gateway core only
// reads them; writes come through the management surface.
package templates

import (
	"context"

	"focusd/internal/store/models"
)

type Repository interface {
	// Set upserts a template body for (userID, name).
	Set(ctx context.Context, userID int64, name, body string) error

	// Get returns the template body; ok=false when no row exists.
	Get(ctx context.Context, userID int64, name string) (string, bool, error)

	// List returns all templates belonging to userID.
	List(ctx context.Context, userID int64) ([]models.Template, error)
}
