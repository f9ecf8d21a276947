package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/emberforge/guildmaster/internal/model"
)

// RateLimiter throttles requests per caller with a token bucket. Each
// authenticated player gets their own bucket; anonymous traffic shares
// one bucket per remote address.
type RateLimiter struct {
	mu      sync.Mutex
	callers map[string]*allowance
	rate    int
	window  time.Duration
	burst   int
	stop    chan struct{}
}

// allowance is one caller's bucket. refilled marks the last time tokens
// were added, which also anchors the reset timestamp reported to clients.
type allowance struct {
	tokens   int
	refilled time.Time
}

// RateLimitConfig holds rate limiter configuration.
type RateLimitConfig struct {
	Rate    int           // tokens earned per window (default 100)
	Window  time.Duration // refill period (default 1 minute)
	Burst   int           // extra tokens above the steady rate (default 20)
	Cleanup time.Duration // idle bucket sweep interval (default 5 minutes)
}

// NewRateLimiter creates a rate limiter and starts its sweep goroutine.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate == 0 {
		cfg.Rate = 100
	}
	if cfg.Window == 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst == 0 {
		cfg.Burst = 20
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = 5 * time.Minute
	}

	rl := &RateLimiter{
		callers: make(map[string]*allowance),
		rate:    cfg.Rate,
		window:  cfg.Window,
		burst:   cfg.Burst,
		stop:    make(chan struct{}),
	}
	go rl.sweep(cfg.Cleanup)
	return rl
}

// Stop halts the sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// sweep drops buckets idle for two full windows. An evicted caller
// simply starts over with a fresh bucket on their next request.
func (rl *RateLimiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-2 * rl.window)
			rl.mu.Lock()
			for caller, a := range rl.callers {
				if a.refilled.Before(cutoff) {
					delete(rl.callers, caller)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// take spends one token for the caller, reporting how many remain and
// when the bucket next refills.
func (rl *RateLimiter) take(caller string) (ok bool, remaining int, reset time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	capacity := rl.rate + rl.burst

	a, found := rl.callers[caller]
	switch {
	case !found:
		a = &allowance{tokens: capacity, refilled: now}
		rl.callers[caller] = a
	case now.Sub(a.refilled) >= rl.window:
		a.tokens = capacity
		a.refilled = now
	default:
		// Earn back tokens in proportion to the elapsed fraction of the
		// window, so a caller never has to wait out a full window.
		earned := int(float64(rl.rate) * float64(now.Sub(a.refilled)) / float64(rl.window))
		if earned > 0 {
			a.tokens = min(a.tokens+earned, capacity)
			a.refilled = now
		}
	}

	reset = a.refilled.Add(rl.window)
	if a.tokens == 0 {
		return false, 0, reset
	}
	a.tokens--
	return true, a.tokens, reset
}

// RateLimit rejects callers that exhaust their token bucket with 429
// and the standard rate limit headers.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := GetUserID(r.Context())
			if caller == "" {
				caller = r.RemoteAddr
			}

			ok, remaining, reset := limiter.take(caller)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if !ok {
				retryAfter := int(time.Until(reset).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
