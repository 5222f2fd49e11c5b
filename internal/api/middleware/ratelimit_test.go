package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func fireLogin(t *testing.T, e *echo.Echo, handler echo.HandlerFunc, ip string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("X-Real-IP", ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/auth/login")
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	e := echo.New()
	handler := RateLimit(LoginLimit)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < LoginLimit.Burst; i++ {
		rec := fireLogin(t, e, handler, "10.0.0.1")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := fireLogin(t, e, handler, "10.0.0.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("429 response must carry Retry-After")
	}
}

func TestRateLimit_KeysByIP(t *testing.T) {
	e := echo.New()
	handler := RateLimit(LoginLimit)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Exhaust the first caller's budget.
	for i := 0; i < LoginLimit.Burst+1; i++ {
		fireLogin(t, e, handler, "10.0.0.1")
	}

	// A different caller is unaffected.
	rec := fireLogin(t, e, handler, "10.0.0.2")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a fresh ip, got %d", rec.Code)
	}
}

func TestRateLimit_RefillsOverTime(t *testing.T) {
	e := echo.New()
	cfg := RateLimitConfig{
		Name:              "test",
		RequestsPerWindow: 20,
		Window:            time.Second,
		Burst:             1,
	}
	handler := RateLimit(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if rec := fireLogin(t, e, handler, "10.0.0.9"); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}
	if rec := fireLogin(t, e, handler, "10.0.0.9"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}

	time.Sleep(60 * time.Millisecond) // 20 req/s refills one token in 50ms

	if rec := fireLogin(t, e, handler, "10.0.0.9"); rec.Code != http.StatusOK {
		t.Fatalf("after refill: expected 200, got %d", rec.Code)
	}
}

func TestClientIP_PrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("X-Real-IP", "10.0.0.2")

	if ip := clientIP(req); ip != "203.0.113.7" {
		t.Fatalf("expected first forwarded address, got %q", ip)
	}
}

func TestClientIP_FallsBackToRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.4:5123"

	if ip := clientIP(req); ip != "192.0.2.4" {
		t.Fatalf("expected remote host, got %q", ip)
	}
}
