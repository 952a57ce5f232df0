package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/codeassist/chat-gateway/internal/api/metrics"
)

const rateLimitMessage = "Too many requests from this IP, please try again after 15 minutes"

// WindowStore counts requests per key within a fixed window. Incr returns the
// count including the current request; the counter resets once the window
// elapses.
type WindowStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitConfig configures the fixed-window per-address rate limiter.
type RateLimitConfig struct {
	// Skipper exempts requests (health probes, metrics) from the limiter.
	Skipper echomiddleware.Skipper
	// Max is the request ceiling per client address per window.
	Max int64
	// Window is the counting window. Defaults to 15 minutes.
	Window time.Duration
	Store  WindowStore
	Log    zerolog.Logger
}

// RateLimit admits or rejects requests by client address before they reach
// any route. The limiter has no memory of users, only of network identity.
// Store failures fail open: an unreachable counter backend must not take the
// gateway down with it.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = echomiddleware.DefaultSkipper
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.Store == nil {
		cfg.Store = NewMemoryWindowStore()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			addr := c.RealIP()
			count, err := cfg.Store.Incr(c.Request().Context(), addr, cfg.Window)
			if err != nil {
				cfg.Log.Error().Err(err).Str("client_addr", addr).Msg("rate limit store unavailable")
				return next(c)
			}

			if count > cfg.Max {
				metrics.RateLimitedTotal.Inc()
				cfg.Log.Warn().Str("client_addr", addr).Int64("count", count).Msg("rate limit exceeded")
				return echo.NewHTTPError(http.StatusTooManyRequests, rateLimitMessage)
			}

			return next(c)
		}
	}
}

type windowEntry struct {
	count   int64
	resetAt time.Time
}

// MemoryWindowStore is the in-process WindowStore used when no Redis address
// is configured. Counters live in a mutex-guarded map keyed by client
// address; expired entries are dropped lazily on access and swept whenever
// the map grows past sweepThreshold.
type MemoryWindowStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
}

const sweepThreshold = 10000

func NewMemoryWindowStore() *MemoryWindowStore {
	return &MemoryWindowStore{entries: make(map[string]*windowEntry)}
}

func (s *MemoryWindowStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		if len(s.entries) >= sweepThreshold {
			s.sweep(now)
		}
		s.entries[key] = &windowEntry{count: 1, resetAt: now.Add(window)}
		return 1, nil
	}

	e.count++
	return e.count, nil
}

// sweep removes expired entries. Caller must hold mu.
func (s *MemoryWindowStore) sweep(now time.Time) {
	for key, e := range s.entries {
		if now.After(e.resetAt) {
			delete(s.entries, key)
		}
	}
}
