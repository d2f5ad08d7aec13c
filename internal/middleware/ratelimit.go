package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientWindow struct {
	count       int
	windowStart time.Time
}

// RateLimiter is a fixed-window counter keyed by client address. The
// store is process-local: multiple instances each keep their own
// counts.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	clients map[string]*clientWindow
	now     func() time.Time
}

// NewRateLimiter builds a limiter allowing max requests per window.
func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		window:  window,
		max:     max,
		clients: make(map[string]*clientWindow),
		now:     time.Now,
	}
}

// hit records a request for clientID and returns the count within the
// current window and the time the window resets. Stale windows are
// swept lazily on each call.
func (rl *RateLimiter) hit(clientID string) (int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	for key, window := range rl.clients {
		if window.windowStart.Before(cutoff) {
			delete(rl.clients, key)
		}
	}

	window, ok := rl.clients[clientID]
	if !ok || window.windowStart.Before(cutoff) {
		window = &clientWindow{count: 0, windowStart: now}
		rl.clients[clientID] = window
	}
	window.count++

	return window.count, window.windowStart.Add(rl.window)
}

// Middleware enforces the limit and stamps X-RateLimit headers on
// every response, throttled or not.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		count, reset := rl.hit(c.ClientIP())

		remaining := rl.max - count
		if remaining < 0 {
			remaining = 0
		}

		c.Writer.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.max))
		c.Writer.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Writer.Header().Set("X-RateLimit-Reset", reset.UTC().Format(time.RFC3339))

		if count > rl.max {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":    false,
				"message":    "Too many requests. Please try again later.",
				"retryAfter": int(rl.window.Seconds()),
			})
			return
		}

		c.Next()
	}
}
