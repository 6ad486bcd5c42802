package apikey

import "errors"

var (
	ErrKeyNotFound = errors.New("api key not found")

	// ErrTooManyActiveKeys is returned when creating a key would exceed the
	// per-user cap on simultaneously active keys.
	ErrTooManyActiveKeys = errors.New("maximum number of active api keys reached")
)
