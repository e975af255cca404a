package limiter

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter implements AttemptLimiter with in-process counters.
// Counts are NOT shared across restarts or multiple instances.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*attemptEntry
	config  Config
}

// attemptEntry tracks failures for a single key.
type attemptEntry struct {
	count     int
	expiresAt time.Time
}

// NewMemoryLimiter creates a new in-memory limiter.
func NewMemoryLimiter(config Config) *MemoryLimiter {
	ml := &MemoryLimiter{
		entries: make(map[string]*attemptEntry),
		config:  config,
	}

	// Expired entries are also dropped lazily on access; the loop keeps
	// abandoned keys from accumulating.
	go ml.cleanupLoop()

	return ml
}

// cleanupLoop periodically removes expired entries.
func (m *MemoryLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.cleanup()
	}
}

// cleanup removes expired entries.
func (m *MemoryLimiter) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for key, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, key)
		}
	}
}

// Allow reports whether the key is under the attempt limit.
func (m *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.entries[key]
	if !exists {
		return true, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return true, nil
	}

	return entry.count < m.config.MaxAttempts, nil
}

// RecordFailure increments the failure count for the key.
func (m *MemoryLimiter) RecordFailure(ctx context.Context, key string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	entry, exists := m.entries[key]
	if !exists || now.After(entry.expiresAt) {
		m.entries[key] = &attemptEntry{
			count:     1,
			expiresAt: now.Add(m.config.Window),
		}
		return nil
	}

	entry.count++
	return nil
}

// Reset clears the failure count for the key.
func (m *MemoryLimiter) Reset(ctx context.Context, key string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// Ensure MemoryLimiter implements AttemptLimiter.
var _ AttemptLimiter = (*MemoryLimiter)(nil)
