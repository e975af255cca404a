package limiter

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter implements AttemptLimiter on Redis so the failure counts are
// shared across server instances.
type RedisLimiter struct {
	client *redis.Client
	config Config
}

// NewRedisLimiter creates a Redis-backed limiter.
func NewRedisLimiter(client *redis.Client, config Config) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		config: config,
	}
}

// redisKey namespaces limiter keys in the shared database.
func redisKey(key string) string {
	return "login_attempts:" + key
}

// Allow reports whether the key is under the attempt limit.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Get(ctx, redisKey(key)).Int()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return false, fmt.Errorf("failed to get attempt count: %w", err)
	}
	return count < r.config.MaxAttempts, nil
}

// RecordFailure increments the failure count. The expiry is set only on the
// first failure so the window is measured from the first attempt.
func (r *RedisLimiter) RecordFailure(ctx context.Context, key string) error {
	k := redisKey(key)

	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("failed to increment attempt count: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, k, r.config.Window).Err(); err != nil {
			return fmt.Errorf("failed to set attempt expiry: %w", err)
		}
	}
	return nil
}

// Reset clears the failure count for the key.
func (r *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset attempt count: %w", err)
	}
	return nil
}

// Ensure RedisLimiter implements AttemptLimiter.
var _ AttemptLimiter = (*RedisLimiter)(nil)
