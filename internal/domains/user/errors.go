package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound = errors.New("user not found")

	// Conflict - registration must distinguish which field collided
	ErrUsernameAlreadyTaken = errors.New("username already taken")
	ErrEmailAlreadyTaken    = errors.New("email already registered")
)

// Service-level errors
var (
	// Deliberately vague: never reveals whether username or password was
	// wrong, and an inactive account yields the same message.
	ErrInvalidCredentials = errors.New("incorrect username or password")
)
