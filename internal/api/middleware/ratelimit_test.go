package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("1.1.1.1") || !rl.Allow("1.1.1.1") {
		t.Fatalf("burst of 2 should be allowed")
	}
	if rl.Allow("1.1.1.1") {
		t.Fatalf("third request should be throttled")
	}
	if !rl.Allow("2.2.2.2") {
		t.Fatalf("other IPs have their own bucket")
	}

	now = now.Add(time.Second)
	if !rl.Allow("1.1.1.1") {
		t.Fatalf("token should refill after a second")
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("1.1.1.1")
	now = now.Add(staleAfter + time.Second)
	rl.Allow("2.2.2.2")
	rl.Cleanup()

	if _, ok := rl.visitors["1.1.1.1"]; ok {
		t.Fatalf("stale visitor not removed")
	}
	if _, ok := rl.visitors["2.2.2.2"]; !ok {
		t.Fatalf("active visitor removed")
	}
}

func TestRateLimit_OnlyPOST(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(0.001, 1)
	handler := RateLimit(rl)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	call := func(method string) error {
		req := httptest.NewRequest(method, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		return handler(e.NewContext(req, httptest.NewRecorder()))
	}

	if err := call(http.MethodPost); err != nil {
		t.Fatalf("first POST should pass: %v", err)
	}
	err := call(http.MethodPost)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := call(http.MethodGet); err != nil {
			t.Fatalf("GET must not be limited: %v", err)
		}
	}
}
