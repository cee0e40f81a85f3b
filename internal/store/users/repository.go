// Package users exposes the consent flag the gateway checks before any AI
// operation runs on a user's behalf.
package users

import "context"

type Repository interface {
	// Ensure creates the user row if it does not exist yet (opt-in defaults
	// to false).
	Ensure(ctx context.Context, userID int64) error

	// SetAIOptIn records the user's consent decision.
	SetAIOptIn(ctx context.Context, userID int64, optIn bool) error

	// AIOptIn returns the consent flag. A missing user is
	// common.ErrorUserNotFound, not false: callers word their refusal
	// differently for the two cases.
	AIOptIn(ctx context.Context, userID int64) (bool, error)
}
