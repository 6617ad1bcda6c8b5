package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(config *RateLimitConfig) *RateLimiter {
	if config == nil {
		config = DefaultRateLimitConfig()
	}
	return NewRateLimiter(config)
}

func TestAllowIPBurst(t *testing.T) {
	config := DefaultRateLimitConfig()
	config.IPBurst = 3
	config.IPRequestsPerSecond = 1
	rl := newTestLimiter(config)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := rl.AllowIP("10.0.0.1")
		if !allowed {
			t.Fatalf("request %d should be within burst, info %+v", i, info)
		}
	}

	allowed, info := rl.AllowIP("10.0.0.1")
	if allowed {
		t.Fatal("request beyond burst should be rejected")
	}
	if info.RetryAfter <= 0 {
		t.Errorf("rejection should carry retry-after, got %d", info.RetryAfter)
	}

	// A different IP is unaffected
	if allowed, _ := rl.AllowIP("10.0.0.2"); !allowed {
		t.Error("separate IP should have its own bucket")
	}
}

func TestBlockedBucketStaysBlocked(t *testing.T) {
	config := DefaultRateLimitConfig()
	config.IPBurst = 1
	config.IPRequestsPerSecond = 1000
	config.IPBlockDuration = time.Minute
	rl := newTestLimiter(config)
	defer rl.Stop()

	rl.AllowIP("10.0.0.3")
	if allowed, _ := rl.AllowIP("10.0.0.3"); allowed {
		t.Fatal("second request should exhaust the single-token bucket")
	}

	// Even with a fast refill rate the block duration holds
	allowed, info := rl.AllowIP("10.0.0.3")
	if allowed {
		t.Fatal("blocked bucket should reject until the block expires")
	}
	if info.LimitType != "blocked" {
		t.Errorf("limit type = %s, want blocked", info.LimitType)
	}
}

func TestAllowTxDailyCap(t *testing.T) {
	config := DefaultRateLimitConfig()
	config.TxBurst = 100
	config.TxPerSecond = 100
	config.TxPerDay = 3
	rl := newTestLimiter(config)
	defer rl.Stop()

	member := "cosmos1member000000000000000000000000000000"
	for i := 0; i < 3; i++ {
		allowed, _ := rl.AllowTx(member)
		if !allowed {
			t.Fatalf("tx %d should be within daily cap", i)
		}
	}

	allowed, info := rl.AllowTx(member)
	if allowed {
		t.Fatal("fourth tx should exceed daily cap")
	}
	if info.LimitType != "daily" {
		t.Errorf("limit type = %s, want daily", info.LimitType)
	}
	if info.RetryAfter <= 0 {
		t.Errorf("daily rejection should point at midnight, got %d", info.RetryAfter)
	}
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "forwarded for single",
			headers: map[string]string{"X-Forwarded-For": "1.2.3.4"},
			remote:  "9.9.9.9:1234",
			want:    "1.2.3.4",
		},
		{
			name:    "forwarded for chain",
			headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"},
			remote:  "9.9.9.9:1234",
			want:    "1.2.3.4",
		},
		{
			name:    "real ip",
			headers: map[string]string{"X-Real-IP": "4.3.2.1"},
			remote:  "9.9.9.9:1234",
			want:    "4.3.2.1",
		},
		{
			name:   "remote addr",
			remote: "9.9.9.9:1234",
			want:   "9.9.9.9",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tc.want {
				t.Errorf("getClientIP = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestTxMiddlewareRequiresMember(t *testing.T) {
	rl := newTestLimiter(nil)
	defer rl.Stop()

	handler := TxRateLimitMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// POST without member address is rejected
	req := httptest.NewRequest(http.MethodPost, "/v1/pools/1/join", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous tx status = %d, want 401", rec.Code)
	}

	// GET passes through untouched
	req = httptest.NewRequest(http.MethodGet, "/v1/pools/1", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("read request status = %d, want 200", rec.Code)
	}

	// Identified POST passes
	req = httptest.NewRequest(http.MethodPost, "/v1/pools/1/join", nil)
	req.Header.Set("X-Member-Address", "cosmos1member000000000000000000000000000000")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("identified tx status = %d, want 200", rec.Code)
	}
}
