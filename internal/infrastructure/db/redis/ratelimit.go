package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitStore holds fixed-window request counters in Redis, keyed by
// client address. Key format: ratelimit:<client_addr>. The counter expires
// when the window elapses, which resets the count for that address. Backing
// the window in Redis keeps the ceiling consistent across gateway replicas.
type RateLimitStore struct {
	client *redis.Client
}

// NewRateLimitStore creates a RateLimitStore wrapping the given Redis client.
func NewRateLimitStore(client *redis.Client) *RateLimitStore {
	return &RateLimitStore{client: client}
}

// Incr atomically increments the window counter for key and returns the new
// count. The expiry is attached only on first increment so the window is
// anchored to the first request, not refreshed by later ones.
func (s *RateLimitStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, s.key(key))
	pipe.ExpireNX(ctx, s.key(key), window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit incr: %w", err)
	}
	return incr.Val(), nil
}

func (s *RateLimitStore) key(clientAddr string) string {
	return fmt.Sprintf("ratelimit:%s", clientAddr)
}
