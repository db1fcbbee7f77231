package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(t *testing.T, h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	h := rl.Middleware()(okHandler())

	for i := 0; i < 3; i++ {
		rec := doRequest(t, h, "10.0.0.1:54321")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}
}

func TestRateLimiterRejectsOverLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	h := rl.Middleware()(okHandler())

	doRequest(t, h, "10.0.0.1:54321")
	doRequest(t, h, "10.0.0.1:54321")
	rec := doRequest(t, h, "10.0.0.1:54321")

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header on 429 response")
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Error.Code != "RATE_LIMITED" {
		t.Fatalf("error code = %q, want RATE_LIMITED", envelope.Error.Code)
	}
}

func TestRateLimiterKeysByClientIP(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	h := rl.Middleware()(okHandler())

	if rec := doRequest(t, h, "10.0.0.1:1111"); rec.Code != http.StatusOK {
		t.Fatalf("first client: status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := doRequest(t, h, "10.0.0.2:2222"); rec.Code != http.StatusOK {
		t.Fatalf("second client: status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := doRequest(t, h, "10.0.0.1:3333"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("first client again: status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestLocalFixedWindowResets(t *testing.T) {
	limiter := NewLocalFixedWindowLimiter()
	ctx := context.Background()
	window := 30 * time.Millisecond

	for i := 0; i < 2; i++ {
		allowed, _, err := limiter.Allow(ctx, "client", 2, window)
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if allowed, _, _ := limiter.Allow(ctx, "client", 2, window); allowed {
		t.Fatal("third request within window should be denied")
	}

	time.Sleep(window + 10*time.Millisecond)

	if allowed, _, _ := limiter.Allow(ctx, "client", 2, window); !allowed {
		t.Fatal("request after window expiry should be allowed")
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (bool, time.Duration, error) {
	return false, 0, errors.New("backend unreachable")
}

func TestRateLimiterFailureModes(t *testing.T) {
	tests := []struct {
		name       string
		mode       FailureMode
		wantStatus int
	}{
		{name: "fail open allows traffic", mode: FailOpen, wantStatus: http.StatusOK},
		{name: "fail closed rejects traffic", mode: FailClosed, wantStatus: http.StatusTooManyRequests},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rl := NewDistributedRateLimiter(failingLimiter{}, 10, time.Minute, tc.mode, "test")
			rec := doRequest(t, rl.Middleware()(okHandler()), "10.0.0.1:1234")
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestRetryAfterHeaderRounding(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "1"},
		{-time.Second, "1"},
		{200 * time.Millisecond, "1"},
		{time.Second, "1"},
		{90 * time.Second, "90"},
	}
	for _, tc := range tests {
		if got := retryAfterHeader(tc.d); got != tc.want {
			t.Errorf("retryAfterHeader(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
