package portal

import (
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Login and the marketing forms are the portal's only unauthenticated write
// paths, so the default budget is tight: 10 attempts per source IP per
// minute. Marketing forms get a looser limiter in the route table.
const (
	defaultRateLimit  = 10
	defaultRateWindow = time.Minute
)

// RateLimiter throttles requests per source IP over a sliding window.
type RateLimiter struct {
	mu     sync.Mutex
	seen   map[string][]time.Time
	limit  int
	window time.Duration
}

// NewRateLimiter creates a limiter allowing limit requests per window.
// Non-positive arguments fall back to the credential-endpoint defaults.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = defaultRateLimit
	}
	if window <= 0 {
		window = defaultRateWindow
	}
	return &RateLimiter{
		seen:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
}

// Allow records an attempt for ip and reports whether it fits the budget.
// Timestamps per IP are kept in arrival order, so expiry is a prefix drop.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.window)
	recent := rl.seen[ip]
	for len(recent) > 0 && !recent[0].After(cutoff) {
		recent = recent[1:]
	}

	if len(recent) >= rl.limit {
		rl.seen[ip] = recent
		return false
	}
	rl.seen[ip] = append(recent, time.Now())
	return true
}

// Middleware rejects over-budget requests with the portal's JSON error
// envelope. A blocked attempt is logged with its source and path.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.Allow(ip) {
			log.Warn().Str("ip", ip).Str("path", r.URL.Path).Msg("Rate limit exceeded")
			writeError(w, http.StatusTooManyRequests, "rate_limited", "Too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}
