package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// Route rate ceilings, requests per minute per client address.
const (
	ReadRatePerMinute      = 100
	WriteRatePerMinute     = 30
	SummarizeRatePerMinute = 10
)

const detailRateLimited = "Too many requests"

// Limiter decides whether a request keyed by client address may proceed.
type Limiter interface {
	Allow(key string) bool
}

// RateLimiter holds one token bucket per client address. Buckets refill
// continuously at the per-minute rate and are never evicted; the key
// space is bounded by the set of distinct client addresses.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

// NewRateLimiter creates a RateLimiter allowing perMinute requests per
// key, with a burst of the same size.
func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   perMinute,
	}
}

// Allow reports whether the request for key may proceed.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[key] = b
	}
	l.mu.Unlock()

	return b.Allow()
}

var _ Limiter = (*RateLimiter)(nil)

// RateLimit returns middleware that rejects requests exceeding the
// limiter's ceiling with 429 before any handler logic runs. Keying
// relies on the RealIP middleware having normalized RemoteAddr.
func RateLimit(limiter Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientAddr(r)
			if !limiter.Allow(key) {
				logger.Warn("rate limit exceeded",
					"client", key,
					"method", r.Method,
					"path", r.URL.Path,
				)
				WriteJSON(w, http.StatusTooManyRequests, ErrorResponse{Detail: detailRateLimited})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByMethod applies the read limiter to GET requests and the
// write limiter to mutating methods, so one route subtree can carry
// different read and write ceilings.
func RateLimitByMethod(read, write Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	readLimit := RateLimit(read, logger)
	writeLimit := RateLimit(write, logger)

	return func(next http.Handler) http.Handler {
		readNext := readLimit(next)
		writeNext := writeLimit(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				readNext.ServeHTTP(w, r)
				return
			}
			writeNext.ServeHTTP(w, r)
		})
	}
}

// clientAddr returns the client host without the ephemeral port.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
