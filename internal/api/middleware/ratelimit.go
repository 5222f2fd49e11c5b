package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/salesbridge/dashboard-api/internal/api/metrics"
)

// RateLimitConfig defines the rate limiting parameters for one profile.
type RateLimitConfig struct {
	// Name labels the profile in metrics and logs.
	Name string
	// RequestsPerWindow is the number of requests allowed in the window.
	RequestsPerWindow int
	// Window is the time window for rate limiting.
	Window time.Duration
	// Burst allows temporary bursts above the sustained rate.
	Burst int
}

// Rate limit profiles per endpoint sensitivity.
var (
	// LoginLimit protects the credential endpoints against brute force.
	LoginLimit = RateLimitConfig{
		Name:              "login",
		RequestsPerWindow: 5,
		Window:            15 * time.Minute,
		Burst:             5,
	}

	// WriteLimit applies to authenticated mutating endpoints.
	WriteLimit = RateLimitConfig{
		Name:              "write",
		RequestsPerWindow: 100,
		Window:            time.Minute,
		Burst:             100,
	}

	// ReadLimit applies to authenticated read endpoints.
	ReadLimit = RateLimitConfig{
		Name:              "read",
		RequestsPerWindow: 200,
		Window:            time.Minute,
		Burst:             200,
	}
)

// clientIP resolves the caller's address, preferring proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// rateLimiter keeps one token bucket per key. Idle buckets are swept
// periodically so ephemeral clients do not accumulate forever.
type rateLimiter struct {
	limiters    sync.Map // map[string]*rate.Limiter
	rate        rate.Limit
	burst       int
	mu          sync.Mutex
	lastCleanup time.Time
}

func (rl *rateLimiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	actual, _ := rl.limiters.LoadOrStore(key, limiter)

	rl.maybeCleanup()

	return actual.(*rate.Limiter)
}

func (rl *rateLimiter) maybeCleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.lastCleanup) < 5*time.Minute {
		return
	}
	rl.lastCleanup = time.Now()

	// A limiter with a full bucket has been idle for at least one window.
	rl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(rl.burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit limits requests per client IP and route using the given profile.
// Each call creates an independent limiter table, so different route groups
// never share buckets even when they use the same profile.
func RateLimit(config RateLimitConfig) echo.MiddlewareFunc {
	ratePerSecond := float64(config.RequestsPerWindow) / config.Window.Seconds()

	rl := &rateLimiter{
		rate:        rate.Limit(ratePerSecond),
		burst:       config.Burst,
		lastCleanup: time.Now(),
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := clientIP(c.Request()) + ":" + c.Path()

			limiter := rl.getLimiter(key)
			if !limiter.Allow() {
				reservation := limiter.Reserve()
				delay := reservation.Delay()
				reservation.Cancel()

				retryAfter := int(delay.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}

				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))

				metrics.RateLimitRejectionsTotal.WithLabelValues(config.Name).Inc()

				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "too many requests, please try again later",
				})
			}

			return next(c)
		}
	}
}
