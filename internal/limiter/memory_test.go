package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_AllowUntilLimit(t *testing.T) {
	l := NewMemoryLimiter(Config{MaxAttempts: 3, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := l.Allow(ctx, "alice")
		require.NoError(t, err)
		require.True(t, allowed, "attempt %d", i)
		require.NoError(t, l.RecordFailure(ctx, "alice"))
	}

	allowed, err := l.Allow(ctx, "alice")
	require.NoError(t, err)
	require.False(t, allowed)

	// Other keys are unaffected.
	allowed, err = l.Allow(ctx, "bob")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestMemoryLimiter_Reset(t *testing.T) {
	l := NewMemoryLimiter(Config{MaxAttempts: 1, Window: time.Minute})
	ctx := context.Background()

	require.NoError(t, l.RecordFailure(ctx, "alice"))

	allowed, err := l.Allow(ctx, "alice")
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, l.Reset(ctx, "alice"))

	allowed, err = l.Allow(ctx, "alice")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestMemoryLimiter_WindowExpiry(t *testing.T) {
	l := NewMemoryLimiter(Config{MaxAttempts: 1, Window: 10 * time.Millisecond})
	ctx := context.Background()

	require.NoError(t, l.RecordFailure(ctx, "alice"))

	allowed, err := l.Allow(ctx, "alice")
	require.NoError(t, err)
	require.False(t, allowed)

	time.Sleep(20 * time.Millisecond)

	allowed, err = l.Allow(ctx, "alice")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestNoOpLimiter(t *testing.T) {
	l := NewNoOpLimiter()
	ctx := context.Background()

	require.NoError(t, l.RecordFailure(ctx, "alice"))
	allowed, err := l.Allow(ctx, "alice")
	require.NoError(t, err)
	require.True(t, allowed)
}
