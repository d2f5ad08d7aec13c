package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limiterRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 3)
	r := limiterRouter(rl)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimiterRejectsOverLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 2)
	r := limiterRouter(rl)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		r.ServeHTTP(last, httptest.NewRequest("GET", "/ping", nil))
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", last.Code)
	}
	if body := last.Body.String(); !strings.Contains(body, "Too many requests. Please try again later.") {
		t.Fatalf("unexpected throttle body: %s", body)
	}
	if !strings.Contains(last.Body.String(), "\"retryAfter\":60") {
		t.Fatalf("expected retryAfter seconds in body, got %s", last.Body.String())
	}
}

func TestRateLimiterStampsHeadersOnEveryResponse(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 5)
	r := limiterRouter(rl)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	if got := w.Header().Get("X-RateLimit-Limit"); got != "5" {
		t.Fatalf("expected limit header 5, got %q", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "4" {
		t.Fatalf("expected remaining header 4, got %q", got)
	}
	if w.Header().Get("X-RateLimit-Reset") == "" {
		t.Fatal("expected reset header to be set")
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(time.Minute, 1)
	rl.now = func() time.Time { return now }

	if count, _ := rl.hit("10.0.0.1"); count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
	if count, _ := rl.hit("10.0.0.1"); count != 2 {
		t.Fatalf("expected count 2 within window, got %d", count)
	}

	now = now.Add(61 * time.Second)
	count, reset := rl.hit("10.0.0.1")
	if count != 1 {
		t.Fatalf("expected fresh window after expiry, got count %d", count)
	}
	if want := now.Add(time.Minute); !reset.Equal(want) {
		t.Fatalf("expected reset %v, got %v", want, reset)
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 1)

	rl.hit("10.0.0.1")
	rl.hit("10.0.0.1")
	if count, _ := rl.hit("10.0.0.2"); count != 1 {
		t.Fatalf("second client should have its own window, got count %d", count)
	}
}

func TestRateLimiterSweepsStaleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(time.Minute, 10)
	rl.now = func() time.Time { return now }

	rl.hit("10.0.0.1")
	rl.hit("10.0.0.2")

	now = now.Add(2 * time.Minute)
	rl.hit("10.0.0.3")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.clients) != 1 {
		t.Fatalf("expected stale windows swept, got %d entries", len(rl.clients))
	}
}
