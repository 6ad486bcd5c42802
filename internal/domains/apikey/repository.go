package apikey

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for API keys.
type Repository interface {
	// CreateCapped inserts the key unless the owner already holds maxActive
	// active keys. The check-and-insert runs atomically: concurrent creates
	// for the same user cannot exceed the cap.
	CreateCapped(ctx context.Context, k *ApiKey, maxActive int) error

	// FindActiveByHash resolves an API key credential. Inactive keys never
	// match; expiry is checked by the caller.
	FindActiveByHash(ctx context.Context, keyHash string) (*ApiKey, error)

	// TouchLastUsed stamps last_used_at with the current time, persisted
	// immediately.
	TouchLastUsed(ctx context.Context, id uuid.UUID) error

	// ListByUser returns all of a user's keys, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ApiKey, error)

	// Revoke soft-disables the key owned by userID. Deleting would lose the
	// audit trail, so the row stays.
	Revoke(ctx context.Context, id, userID uuid.UUID) error
}
