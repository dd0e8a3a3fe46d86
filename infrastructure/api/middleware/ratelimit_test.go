package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeLimiter denies once a fixed budget per key is spent.
type fakeLimiter struct {
	budget map[string]int
}

func (f *fakeLimiter) Allow(key string) bool {
	if f.budget[key] <= 0 {
		return false
	}
	f.budget[key]--
	return true
}

func TestRateLimitAllows(t *testing.T) {
	limiter := &fakeLimiter{budget: map[string]int{"1.2.3.4": 2}}
	handler := RateLimit(limiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/contributions", nil)
		req.RemoteAddr = "1.2.3.4:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitRejects(t *testing.T) {
	limiter := &fakeLimiter{budget: map[string]int{"1.2.3.4": 0}}
	handler := RateLimit(limiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for rate-limited requests")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/contributions", nil)
	req.RemoteAddr = "1.2.3.4:5555"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.JSONEq(t, `{"detail": "Too many requests"}`, rec.Body.String())
}

func TestRateLimitKeysByAddress(t *testing.T) {
	limiter := &fakeLimiter{budget: map[string]int{"1.2.3.4": 0, "5.6.7.8": 1}}
	handler := RateLimit(limiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/contributions", nil)
	req.RemoteAddr = "5.6.7.8:9999"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/contributions", nil)
	req.RemoteAddr = "1.2.3.4:9999"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimiterBucket(t *testing.T) {
	l := NewRateLimiter(3)

	for i := 0; i < 3; i++ {
		require.True(t, l.Allow("client"))
	}
	// Burst exhausted; the bucket refills at 3 per minute so the next
	// call within the same instant must fail.
	require.False(t, l.Allow("client"))
	require.True(t, l.Allow("other"))
}
