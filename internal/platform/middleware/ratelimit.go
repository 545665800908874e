package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hcpe/hcpe/internal/platform/auth"
)

// RateLimitConfig tunes the per-caller token bucket.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig returns default rate limiting settings.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

// Buckets idle past this age are dropped so the key map does not grow with
// every address the server has ever seen.
const (
	idleEvictAfter = 10 * time.Minute
	sweepEvery     = time.Minute
)

// bucket is one caller's token balance. Tokens accrue continuously at the
// refill rate up to the burst ceiling; each request spends one.
type bucket struct {
	balance  float64
	lastSeen time.Time
}

type limiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	cfg       RateLimitConfig
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	return &limiter{
		buckets:   make(map[string]*bucket),
		cfg:       cfg,
		lastSweep: time.Now(),
	}
}

// take spends one token for key, reporting whether the request may proceed,
// the whole tokens left, and how long a refused caller should wait.
func (l *limiter) take(key string, now time.Time) (ok bool, remaining int, wait time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= sweepEvery {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) >= idleEvictAfter {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, found := l.buckets[key]
	if !found {
		b = &bucket{balance: float64(l.cfg.BurstSize), lastSeen: now}
		l.buckets[key] = b
	} else {
		b.balance += now.Sub(b.lastSeen).Seconds() * l.cfg.RequestsPerSecond
		if ceiling := float64(l.cfg.BurstSize); b.balance > ceiling {
			b.balance = ceiling
		}
		b.lastSeen = now
	}

	if b.balance >= 1 {
		b.balance--
		return true, int(b.balance), 0
	}
	if l.cfg.RequestsPerSecond <= 0 {
		return false, 0, time.Second
	}
	secs := (1 - b.balance) / l.cfg.RequestsPerSecond
	return false, 0, time.Duration(math.Ceil(secs)) * time.Second
}

// RateLimit throttles each caller with a token bucket, keyed by the
// authenticated user when present and by client IP otherwise.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	lim := newLimiter(cfg)
	limitValue := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 0, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if uid := auth.UserIDFromContext(c.Request().Context()); uid != "" {
				key = uid + ":" + key
			}

			ok, remaining, wait := lim.take(key, time.Now())
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", limitValue)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				h.Set("Retry-After", strconv.Itoa(int(wait.Seconds())))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
