// Package cache provides a byte-value cache with TTL expiry.
// The dashboard stats queries hit every table, so their results are cached
// for a short interval instead of recomputed per request.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache defines the caching interface.
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
