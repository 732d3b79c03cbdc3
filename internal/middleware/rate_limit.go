package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/plumablog/backend/internal/api/httpx"
	"github.com/plumablog/backend/internal/httperr"
)

type tokenBucket struct {
	mu     sync.Mutex
	tokens int
	last   time.Time
	rate   int
	burst  int
}

// RateLimit is a process-wide token bucket; rps <= 0 disables it.
func RateLimit(rps int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	tb := &tokenBucket{tokens: rps, last: time.Now(), rate: rps, burst: rps}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tb.mu.Lock()
			now := time.Now()
			if elapsed := now.Sub(tb.last).Seconds(); elapsed > 0 {
				if refill := int(elapsed * float64(tb.rate)); refill > 0 {
					tb.tokens += refill
					if tb.tokens > tb.burst {
						tb.tokens = tb.burst
					}
					tb.last = now
				}
			}
			allowed := tb.tokens > 0
			if allowed {
				tb.tokens--
			}
			tb.mu.Unlock()

			if !allowed {
				httpx.Fail(w, httperr.New(http.StatusTooManyRequests, "Too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
