package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type memoryCounter struct {
	mu   sync.Mutex
	hits map[string]int64
	err  error
}

func (c *memoryCounter) Hit(ctx context.Context, key string, now time.Time, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	if c.hits == nil {
		c.hits = map[string]int64{}
	}
	n := c.hits[key]
	c.hits[key]++
	return n, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func request(remote string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/favorites/planets/1", nil)
	req.RemoteAddr = remote
	return req
}

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	rl := New(&memoryCounter{}, 2, time.Minute)
	rl.now = func() time.Time { return time.Unix(1000, 0) }
	h := rl.Middleware(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, request("10.0.0.1:5555"))
		codes = append(codes, rr.Code)

		if i == 0 {
			assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Remaining"))
			assert.Equal(t, "1060", rr.Header().Get("X-RateLimit-Reset"))
		}
		if i == 2 {
			assert.Equal(t, "60", rr.Header().Get("Retry-After"))
			assert.JSONEq(t, `{"msg":"Demasiadas solicitudes, inténtalo más tarde"}`, rr.Body.String())
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, request("10.0.0.2:5555"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMiddlewareFailsOpen(t *testing.T) {
	h := New(&memoryCounter{err: errors.New("redis down")}, 1, time.Minute).Middleware(okHandler())

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, request("10.0.0.1:5555"))
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestNilLimiterPassesThrough(t *testing.T) {
	rl := NewRedis(nil, 10, time.Minute)
	assert.Nil(t, rl)

	rr := httptest.NewRecorder()
	rl.Middleware(okHandler()).ServeHTTP(rr, request("10.0.0.1:5555"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		forward string
		want    string
	}{
		{name: "remote addr", remote: "192.168.1.4:1234", want: "192.168.1.4"},
		{name: "forwarded chain", remote: "10.0.0.1:1", forward: "203.0.113.7, 10.0.0.1", want: "203.0.113.7"},
		{name: "remote without port", remote: "192.168.1.4", want: "192.168.1.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(tt.remote)
			if tt.forward != "" {
				req.Header.Set("X-Forwarded-For", tt.forward)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
