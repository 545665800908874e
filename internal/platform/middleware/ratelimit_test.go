package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hcpe/hcpe/internal/platform/auth"
)

func TestRateLimit_RequestsWithinLimit(t *testing.T) {
	cfg := RateLimitConfig{
		RequestsPerSecond: 10,
		BurstSize:         5,
	}

	e := echo.New()
	mw := RateLimit(cfg)
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Send 5 requests (within burst size), all should pass
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		if err != nil {
			t.Fatalf("request %d: expected no error, got %v", i+1, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}

		// Verify X-RateLimit-Limit header is set
		limitHeader := rec.Header().Get("X-RateLimit-Limit")
		if limitHeader != "10" {
			t.Errorf("request %d: expected X-RateLimit-Limit '10', got %q", i+1, limitHeader)
		}
	}
}

func TestRateLimit_ExceedsLimit(t *testing.T) {
	cfg := RateLimitConfig{
		RequestsPerSecond: 1,
		BurstSize:         2,
	}

	e := echo.New()
	mw := RateLimit(cfg)
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// First 2 requests should pass (burst size = 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		err := handler(c)
		if err != nil {
			t.Fatalf("request %d: expected no error, got %v", i+1, err)
		}
	}

	// Third request should be rate limited
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := handler(c)

	if err == nil {
		t.Fatal("expected error for rate-limited request")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", httpErr.Code)
	}
}

func TestRateLimit_RetryAfterHeader(t *testing.T) {
	cfg := RateLimitConfig{
		RequestsPerSecond: 1,
		BurstSize:         1,
	}

	e := echo.New()
	mw := RateLimit(cfg)
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// First request passes
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = handler(c)

	// Second request should be rate limited and include Retry-After
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	err := handler(c)

	if err == nil {
		t.Fatal("expected error for rate-limited request")
	}

	retryAfter := rec.Header().Get("Retry-After")
	if retryAfter == "" {
		t.Error("expected Retry-After header to be set")
	}

	retryVal, parseErr := strconv.Atoi(retryAfter)
	if parseErr != nil {
		t.Fatalf("Retry-After header is not a valid integer: %q", retryAfter)
	}
	if retryVal < 1 {
		t.Errorf("expected Retry-After >= 1, got %d", retryVal)
	}

	// Check X-RateLimit-Remaining is "0" for rate-limited requests
	remaining := rec.Header().Get("X-RateLimit-Remaining")
	if remaining != "0" {
		t.Errorf("expected X-RateLimit-Remaining '0', got %q", remaining)
	}
}

func TestRateLimit_PerKeyIsolation(t *testing.T) {
	cfg := RateLimitConfig{
		RequestsPerSecond: 1,
		BurstSize:         1,
	}

	e := echo.New()
	mw := RateLimit(cfg)
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	userRequest := func(uid string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(req.Context(), auth.UserIDKey, uid)
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec)
	}

	// First request from user-a should pass
	if err := handler(userRequest("user-a")); err != nil {
		t.Fatalf("user-a first request: expected no error, got %v", err)
	}

	// Second request from user-a should be rate limited
	if err := handler(userRequest("user-a")); err == nil {
		t.Fatal("user-a second request: expected rate limit error")
	}

	// First request from user-b should pass (separate bucket)
	if err := handler(userRequest("user-b")); err != nil {
		t.Fatalf("user-b first request: expected no error, got %v", err)
	}
}

func TestRateLimit_DefaultConfig(t *testing.T) {
	cfg := DefaultRateLimitConfig()
	if cfg.RequestsPerSecond != 100 {
		t.Errorf("expected RequestsPerSecond 100, got %f", cfg.RequestsPerSecond)
	}
	if cfg.BurstSize != 200 {
		t.Errorf("expected BurstSize 200, got %d", cfg.BurstSize)
	}
}

func TestLimiter_ZeroRateWaitsOneSecond(t *testing.T) {
	lim := newLimiter(RateLimitConfig{RequestsPerSecond: 0, BurstSize: 1})
	now := time.Now()

	if ok, _, _ := lim.take("k", now); !ok {
		t.Fatal("expected the single burst token to be granted")
	}
	ok, _, wait := lim.take("k", now)
	if ok {
		t.Fatal("expected refusal once the burst is spent")
	}
	if wait != time.Second {
		t.Errorf("expected 1s wait with zero refill rate, got %v", wait)
	}
}

func TestLimiter_RefillsOverTime(t *testing.T) {
	lim := newLimiter(RateLimitConfig{RequestsPerSecond: 2, BurstSize: 1})
	now := time.Now()

	lim.take("k", now)
	if ok, _, _ := lim.take("k", now); ok {
		t.Fatal("expected refusal immediately after spending the burst")
	}
	if ok, _, _ := lim.take("k", now.Add(time.Second)); !ok {
		t.Error("expected a token to accrue after one second at 2/s")
	}
}

func TestLimiter_EvictsIdleBuckets(t *testing.T) {
	lim := newLimiter(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5})
	now := time.Now()

	lim.take("stale", now)
	// A take past the idle threshold triggers the sweep that drops the
	// stale key while keeping the caller's own bucket.
	lim.take("fresh", now.Add(idleEvictAfter))

	lim.mu.Lock()
	defer lim.mu.Unlock()
	if _, ok := lim.buckets["stale"]; ok {
		t.Error("expected idle bucket to be evicted")
	}
	if _, ok := lim.buckets["fresh"]; !ok {
		t.Error("expected active bucket to survive the sweep")
	}
}
