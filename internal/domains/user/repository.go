package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for users.
type Repository interface {
	Create(ctx context.Context, u *User) error

	// FindActiveByID resolves a user for authentication purposes: inactive
	// users are treated as not found.
	FindActiveByID(ctx context.Context, id uuid.UUID) (*User, error)

	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindActiveByUsername(ctx context.Context, username string) (*User, error)

	// FindByUsernameOrEmail supports the registration conflict check, which
	// must report which of the two fields collided.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*User, error)
}
