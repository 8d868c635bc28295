package api

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/FocuswithJustin/werd/internal/cache"
	"github.com/FocuswithJustin/werd/internal/logging"
)

// bucketIdleTTL is how long an untouched client bucket is kept.
const bucketIdleTTL = 5 * time.Minute

// RateLimitConfig limits selection writes per client. A zero
// RequestsPerMinute disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
}

// tokenBucket implements a token bucket rate limiter.
type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	last       time.Time
}

func newTokenBucket(capacity, refillRate float64, now time.Time) *tokenBucket {
	return &tokenBucket{tokens: capacity, capacity: capacity, refillRate: refillRate, last: now}
}

// take refills the bucket up to now and consumes one token if available.
// It returns the tokens left and when the bucket will be full again.
func (tb *tokenBucket) take(now time.Time) (ok bool, remaining int, full time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if elapsed := now.Sub(tb.last); elapsed > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+elapsed.Seconds()*tb.refillRate)
		tb.last = now
	}
	if tb.tokens >= 1 {
		tb.tokens--
		ok = true
	}
	full = now
	if tb.tokens < tb.capacity {
		full = now.Add(time.Duration((tb.capacity - tb.tokens) / tb.refillRate * float64(time.Second)))
	}
	return ok, int(tb.tokens), full
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for
// bucketIdleTTL are dropped.
type RateLimiter struct {
	cfg     RateLimitConfig
	buckets *cache.TTLCache[string, *tokenBucket]
	now     func() time.Time
}

// NewRateLimiter creates a limiter. BurstSize defaults to
// RequestsPerMinute.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = cfg.RequestsPerMinute
	}
	return &RateLimiter{
		cfg:     cfg,
		buckets: cache.New[string, *tokenBucket](bucketIdleTTL, cache.WithMaxEntries(10000)),
		now:     time.Now,
	}
}

func (rl *RateLimiter) bucket(ip string) *tokenBucket {
	b, _ := rl.buckets.GetOrLoad(ip, func() (*tokenBucket, error) {
		return newTokenBucket(float64(rl.cfg.BurstSize), float64(rl.cfg.RequestsPerMinute)/60, rl.now()), nil
	})
	rl.buckets.Set(ip, b)
	return b
}

// Allow consumes a token for ip.
func (rl *RateLimiter) Allow(ip string) bool {
	ok, _, _ := rl.bucket(ip).take(rl.now())
	return ok
}

// Middleware limits requests that change state. Reads pass through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		ip := getClientIP(r)
		b := rl.bucket(ip)
		now := rl.now()
		ok, remaining, full := b.take(now)

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.cfg.RequestsPerMinute))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", full.Unix()))

		if !ok {
			retryAfter := int(full.Sub(now).Seconds()) + 1
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			logging.WarnContext(r.Context(), "rate_limited", "ip", ip, "path", r.URL.Path)
			respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", retryAfter))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// getClientIP takes the leftmost X-Forwarded-For address, then X-Real-IP,
// then RemoteAddr. Header values that are not IP addresses are ignored.
func getClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(ip) != nil {
		return ip
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) != nil {
		return ip
	}
	return "unknown"
}
