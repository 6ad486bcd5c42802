package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. Implementations may be Redis,
// Memcached or in-memory; repositories only depend on this interface.
type Cache interface {
	// Get fetches a key and unmarshals it into dest.
	// Returns (found, error): on a miss dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
