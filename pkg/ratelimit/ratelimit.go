// Package ratelimit limits requests per client with a Redis sliding window.
package ratelimit

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/starwars-api/pkg/logger"
	"github.com/tair/starwars-api/pkg/response"
)

// Counter records a hit for key and returns how many hits preceded it
// inside the window.
type Counter interface {
	Hit(ctx context.Context, key string, now time.Time, window time.Duration) (int64, error)
}

// RateLimiter rejects clients exceeding maxRequests per window. A nil
// limiter lets every request through.
type RateLimiter struct {
	counter     Counter
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// New creates a limiter over counter
func New(counter Counter, maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{counter: counter, maxRequests: maxRequests, window: window, now: time.Now}
}

// NewRedis creates a limiter backed by client, or nil when client is nil
// or the limit is disabled.
func NewRedis(client *redis.Client, maxRequests int, window time.Duration) *RateLimiter {
	if client == nil || maxRequests <= 0 {
		return nil
	}
	return New(&RedisCounter{client: client}, maxRequests, window)
}

// Middleware enforces the limit. Counter failures let the request through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := ClientIP(r)
		now := rl.now()

		count, err := rl.counter.Hit(ctx, "ratelimit:"+id, now, rl.window)
		if err != nil {
			logger.Error(ctx).Err(err).Str("client", id).Msg("Rate limiter error")
			next.ServeHTTP(w, r)
			return
		}

		remaining := rl.maxRequests - int(count) - 1
		if remaining < 0 {
			remaining = 0
		}
		reset := now.Add(rl.window)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if count >= int64(rl.maxRequests) {
			logger.Warn(ctx).Str("client", id).Int("limit", rl.maxRequests).Msg("Rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			response.Error(w, http.StatusTooManyRequests, "Demasiadas solicitudes, inténtalo más tarde")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the first X-Forwarded-For address, falling back to the
// remote address host.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RedisCounter keeps one sorted set of hit timestamps per key
type RedisCounter struct {
	client *redis.Client
}

func (c *RedisCounter) Hit(ctx context.Context, key string, now time.Time, window time.Duration) (int64, error) {
	windowStart := now.Add(-window)

	pipe := c.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	count := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, key, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to record hit: %w", err)
	}
	return count.Val(), nil
}
