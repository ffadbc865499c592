// Package ratelimit implements fixed-window request counters keyed by client.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"profile-api.backend/pkg/redis"
)

// Store increments the counter for key inside a window of the given length and
// reports the new count and the time left until the window resets.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// MemoryStore keeps counters in process memory. Counters reset on restart and
// are not shared between instances.
type MemoryStore struct {
	mu    sync.Mutex
	cache *gocache.Cache
	now   func() time.Time
}

// NewMemoryStore creates a process-local store; expired windows are swept every cleanupInterval.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, cleanupInterval),
		now:   time.Now,
	}
}

func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, expiresAt, found := s.cache.GetWithExpiration(key); found {
		count, err := s.cache.IncrementInt64(key, 1)
		if err != nil {
			return 0, 0, err
		}
		return count, expiresAt.Sub(s.now()), nil
	}

	s.cache.Set(key, int64(1), window)
	return 1, window, nil
}

// RedisStore keeps counters in the shared redis client so every instance sees the same budget.
type RedisStore struct{}

func NewRedisStore() *RedisStore {
	return &RedisStore{}
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	return redis.IncrWindow(ctx, key, window)
}

// Result describes the outcome of one Allow call.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAfter time.Duration
}

// Limiter allows at most Max requests per client inside each Window.
type Limiter struct {
	Name   string
	Max    int
	Window time.Duration
	store  Store
}

func NewLimiter(name string, max int, window time.Duration, store Store) *Limiter {
	return &Limiter{Name: name, Max: max, Window: window, store: store}
}

// Allow records one request for client and reports whether it fits the budget.
func (l *Limiter) Allow(ctx context.Context, client string) (Result, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", l.Name, client)
	count, resetAfter, err := l.store.Increment(ctx, key, l.Window)
	if err != nil {
		return Result{}, fmt.Errorf("rate limit %s: %w", l.Name, err)
	}

	remaining := l.Max - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:    int(count) <= l.Max,
		Limit:      l.Max,
		Remaining:  remaining,
		ResetAfter: resetAfter,
	}, nil
}
