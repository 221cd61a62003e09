package cache

import (
	"context"
	"time"
)

// Cache is the contract for the caching layer. Repositories depend on this
// interface rather than a concrete Redis client so implementations can be
// swapped out (and faked in tests).
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// Returns (true, nil) on a hit; (false, nil) on a miss, leaving dest untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes all keys matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
