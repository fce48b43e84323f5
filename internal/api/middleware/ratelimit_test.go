package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func request(remoteAddr string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/words", nil)
	r.RemoteAddr = remoteAddr
	return r
}

func TestRateLimiterThrottlesPerClient(t *testing.T) {
	t.Parallel() // Enable parallel execution
	rl := NewRateLimiter(1, 2)
	defer rl.Stop()
	handler := rl.Limit(okHandler())

	// The burst covers the first two requests, the third is rejected.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request("10.0.0.1:4000"))
		if rec.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, request("10.0.0.1:4000"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 after burst, got %d", rec.Code)
	}

	// A different client has its own bucket.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, request("10.0.0.2:4000"))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for a fresh client, got %d", rec.Code)
	}
}

func TestRateLimiterStopIsIdempotent(t *testing.T) {
	t.Parallel() // Enable parallel execution
	rl := NewRateLimiter(10, 10)
	rl.Stop()
	rl.Stop()

	// The limiter still serves after Stop; only pruning ends.
	handler := rl.Limit(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, request("10.0.0.3:4000"))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 after Stop, got %d", rec.Code)
	}
}
