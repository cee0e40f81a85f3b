// Package apikeys persists the encrypted fallback copy of provider API keys,
// one row per (user, provider), last write wins. Rows hold ciphertext only;
// plaintext keys never reach this package.
package apikeys

import "context"

type Repository interface {
	// Upsert stores ciphertext for (userID, provider), replacing any
	// previous row.
	Upsert(ctx context.Context, userID int64, provider, ciphertext string) error

	// Get returns the ciphertext; ok=false when no row exists.
	Get(ctx context.Context, userID int64, provider string) (string, bool, error)

	// Delete removes the row. Deleting a missing row is not an error.
	Delete(ctx context.Context, userID int64, provider string) error
}
