// Package limiter provides failed-login attempt tracking.
// For single-node deployments an in-memory counter is used.
// For distributed deployments a Redis-backed counter shares state
// across instances.
package limiter

import (
	"context"
	"time"
)

// AttemptLimiter counts failed attempts per key within a rolling window.
// Login handlers record a failure after each rejected credential check and
// consult Allow before running the next one.
type AttemptLimiter interface {
	// Allow reports whether the key is still under the attempt limit.
	Allow(ctx context.Context, key string) (bool, error)

	// RecordFailure increments the failure count for the key. The count
	// expires after the window elapses.
	RecordFailure(ctx context.Context, key string) error

	// Reset clears the failure count for the key, called after a
	// successful login.
	Reset(ctx context.Context, key string) error
}

// Config holds the limiter thresholds.
type Config struct {
	// MaxAttempts is the number of failures allowed within the window.
	MaxAttempts int

	// Window is how long failures are remembered.
	Window time.Duration
}

// DefaultConfig returns the default limiter thresholds.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 10,
		Window:      15 * time.Minute,
	}
}

// NoOpLimiter never limits. Use when throttling is disabled.
type NoOpLimiter struct{}

// NewNoOpLimiter creates a limiter that always allows.
func NewNoOpLimiter() *NoOpLimiter {
	return &NoOpLimiter{}
}

// Allow always returns true.
func (n *NoOpLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return true, ctx.Err()
}

// RecordFailure does nothing.
func (n *NoOpLimiter) RecordFailure(ctx context.Context, key string) error {
	return ctx.Err()
}

// Reset does nothing.
func (n *NoOpLimiter) Reset(ctx context.Context, key string) error {
	return ctx.Err()
}

// Ensure NoOpLimiter implements AttemptLimiter.
var _ AttemptLimiter = (*NoOpLimiter)(nil)
