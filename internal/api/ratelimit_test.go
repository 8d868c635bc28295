package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenBucketTake(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newTokenBucket(3, 1, start)

	for i := range 3 {
		if ok, _, _ := b.take(start); !ok {
			t.Fatalf("take %d denied during burst", i+1)
		}
	}
	ok, remaining, full := b.take(start)
	if ok || remaining != 0 {
		t.Fatalf("take after burst = %v, %d", ok, remaining)
	}
	if want := start.Add(3 * time.Second); !full.Equal(want) {
		t.Errorf("full at %v, want %v", full, want)
	}

	if ok, _, _ := b.take(start.Add(1100 * time.Millisecond)); !ok {
		t.Error("take after refill denied")
	}
	if ok, _, _ := b.take(start.Add(1200 * time.Millisecond)); ok {
		t.Error("second take after a single refill allowed")
	}

	if _, remaining, _ := b.take(start.Add(time.Hour)); remaining != 2 {
		t.Errorf("remaining after long idle = %d, want capacity-1", remaining)
	}
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 2})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("burst denied")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("third request allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("other client denied")
	}

	now = now.Add(30 * time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Error("request after refill denied")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 60, BurstSize: 1})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/selection/tap", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	if w := send(http.MethodPost); w.Code != http.StatusOK || w.Header().Get("X-RateLimit-Limit") != "60" {
		t.Fatalf("first POST = %d %v", w.Code, w.Header())
	}
	w := send(http.MethodPost)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second POST = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
	for range 5 {
		if w := send(http.MethodGet); w.Code != http.StatusOK {
			t.Fatalf("GET limited: %d", w.Code)
		}
	}
}

func TestRateLimiterFirstRequest(t *testing.T) {
	for _, burst := range []int{1, 2, 5} {
		rl := NewRateLimiter(RateLimitConfig{RequestsPerMinute: 60, BurstSize: burst})
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		rl.now = func() time.Time {
			now = now.Add(time.Millisecond)
			return now
		}
		h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/selection/tap", nil)
		req.RemoteAddr = "192.0.2.9:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("burst %d: first POST = %d", burst, w.Code)
		}
		if got, want := w.Header().Get("X-RateLimit-Remaining"), fmt.Sprint(burst-1); got != want {
			t.Errorf("burst %d: remaining = %s, want %s", burst, got, want)
		}
	}
}

func TestTokenBucketClockSkew(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newTokenBucket(1, 1, start)
	if ok, remaining, _ := b.take(start.Add(-time.Second)); !ok || remaining != 0 {
		t.Errorf("take before creation = %v, %d", ok, remaining)
	}
}

func TestServerRateLimit(t *testing.T) {
	ts := newTestServer(t, Config{RateLimit: RateLimitConfig{RequestsPerMinute: 1}})
	if w, _ := ts.do(t, http.MethodPost, "/api/selection/tap", `{"key":"1:1"}`); w.Code != http.StatusOK {
		t.Fatalf("first tap = %d", w.Code)
	}
	w, env := ts.do(t, http.MethodPost, "/api/selection/tap", `{"key":"1:2"}`)
	if w.Code != http.StatusTooManyRequests || env.Error.Code != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("second tap = %d %+v", w.Code, env.Error)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		realIP     string
		want       string
	}{
		{"remote addr", "192.0.2.1:1234", "", "", "192.0.2.1"},
		{"forwarded first", "192.0.2.1:1234", "203.0.113.5, 10.0.0.1", "", "203.0.113.5"},
		{"invalid forwarded", "192.0.2.1:1234", "not-an-ip", "", "192.0.2.1"},
		{"real ip", "192.0.2.1:1234", "", "198.51.100.7", "198.51.100.7"},
		{"ipv6", "[2001:db8::1]:443", "", "", "2001:db8::1"},
		{"garbage", "nonsense", "", "", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
