package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func newRateLimiter(t *testing.T, cfg RateLimitConfig) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(cfg)
	t.Cleanup(rl.Stop)
	return rl
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{})

	if rl.rate != 100 {
		t.Errorf("default rate = %d, want 100", rl.rate)
	}
	if rl.window != time.Minute {
		t.Errorf("default window = %v, want 1m", rl.window)
	}
	if rl.burst != 20 {
		t.Errorf("default burst = %d, want 20", rl.burst)
	}
}

func TestTake_FreshCallerGetsFullBucket(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{Rate: 10, Burst: 2, Window: time.Minute})

	ok, remaining, reset := rl.take("user:alice")
	if !ok {
		t.Fatal("a fresh caller's first request must pass")
	}
	if remaining != 11 {
		t.Errorf("remaining = %d, want rate+burst-1 = 11", remaining)
	}
	if reset.Before(time.Now()) {
		t.Error("reset must lie in the future")
	}
}

func TestTake_BucketDrainsThenDenies(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{Rate: 2, Burst: 1, Window: time.Hour})

	// A player mashing the recruit button gets rate+burst requests
	for i := 0; i < 3; i++ {
		if ok, _, _ := rl.take("user:alice"); !ok {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	ok, remaining, _ := rl.take("user:alice")
	if ok {
		t.Error("a drained bucket must deny")
	}
	if remaining != 0 {
		t.Errorf("remaining = %d after denial, want 0", remaining)
	}
}

func TestTake_CallersDrainIndependently(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{Rate: 1, Burst: 0, Window: time.Hour})

	if ok, _, _ := rl.take("user:alice"); !ok {
		t.Fatal("alice's first request should pass")
	}
	if ok, _, _ := rl.take("user:alice"); ok {
		t.Error("alice's bucket should be drained")
	}
	if ok, _, _ := rl.take("user:bob"); !ok {
		t.Error("alice draining her bucket must not throttle bob")
	}
}

func TestTake_FullRefillAfterWindow(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{Rate: 2, Burst: 0, Window: 20 * time.Millisecond})

	rl.take("user:alice")
	rl.take("user:alice")
	if ok, _, _ := rl.take("user:alice"); ok {
		t.Fatal("bucket should be drained")
	}

	time.Sleep(30 * time.Millisecond)

	ok, remaining, _ := rl.take("user:alice")
	if !ok {
		t.Error("a full window must refill the bucket")
	}
	if remaining != 1 {
		t.Errorf("remaining = %d after refill, want 1", remaining)
	}
}

func TestTake_PartialRefillWithinWindow(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{Rate: 100, Burst: 0, Window: 100 * time.Millisecond})

	for i := 0; i < 100; i++ {
		rl.take("user:alice")
	}
	if ok, _, _ := rl.take("user:alice"); ok {
		t.Fatal("bucket should be drained")
	}

	// Half a window earns back roughly half the rate
	time.Sleep(50 * time.Millisecond)

	ok, remaining, _ := rl.take("user:alice")
	if !ok {
		t.Error("partial elapsed time must earn back tokens")
	}
	if remaining < 10 {
		t.Errorf("remaining = %d, expected a meaningful partial refill", remaining)
	}
}

func TestTake_RefillNeverExceedsCapacity(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{Rate: 5, Burst: 2, Window: 10 * time.Millisecond})

	rl.take("user:alice")

	// Several idle windows must not stockpile tokens past rate+burst
	time.Sleep(50 * time.Millisecond)

	_, remaining, _ := rl.take("user:alice")
	if remaining != 6 {
		t.Errorf("remaining = %d, want capped at rate+burst-1 = 6", remaining)
	}
}

func TestTake_ConcurrentCallersAccountExactly(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{Rate: 50, Burst: 0, Window: time.Hour})

	var wg sync.WaitGroup
	var mu sync.Mutex
	passed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _, _ := rl.take("user:alice"); ok {
				mu.Lock()
				passed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if passed != 50 {
		t.Errorf("exactly rate requests must pass under contention, got %d", passed)
	}
}

func TestSweep_EvictsIdleCallers(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{Rate: 10, Window: time.Millisecond, Cleanup: 5 * time.Millisecond})

	rl.take("user:idle")

	deadline := time.After(time.Second)
	for {
		rl.mu.Lock()
		_, present := rl.callers["user:idle"]
		rl.mu.Unlock()
		if !present {
			return
		}
		select {
		case <-deadline:
			t.Fatal("idle bucket was never swept")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSweep_KeepsActiveCallers(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{Rate: 10, Window: time.Hour, Cleanup: 5 * time.Millisecond})

	rl.take("user:active")
	time.Sleep(20 * time.Millisecond)

	rl.mu.Lock()
	_, present := rl.callers["user:active"]
	rl.mu.Unlock()
	if !present {
		t.Error("a bucket within its window must survive the sweep")
	}
}

func TestRateLimiter_StopHaltsSweep(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimitConfig{Cleanup: time.Millisecond})
	done := make(chan struct{})
	go func() {
		rl.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop must not hang")
	}
}

func TestRateLimit_AllowedRequestCarriesHeaders(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{Rate: 10, Burst: 0, Window: time.Minute})
	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, keyedRequest(http.MethodGet, "/v1/guild", "", "", "user:alice"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "10" {
		t.Errorf("X-RateLimit-Limit = %q, want 10", got)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "9" {
		t.Errorf("X-RateLimit-Remaining = %q, want 9", got)
	}
	if rec.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("X-RateLimit-Reset missing")
	}
}

func TestRateLimit_ThrottledRequestGets429(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{Rate: 1, Burst: 0, Window: time.Hour})
	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), keyedRequest(http.MethodPost, "/v1/battles", "{}", "", "user:alice"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, keyedRequest(http.MethodPost, "/v1/battles", "{}", "", "user:alice"))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After missing on a throttled response")
	}

	var problem struct {
		Title  string `json:"title"`
		Status int    `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("unmarshal problem body: %v", err)
	}
	if problem.Title != "Too Many Requests" || problem.Status != http.StatusTooManyRequests {
		t.Errorf("unexpected problem body: %+v", problem)
	}
}

func TestRateLimit_AuthenticatedCallersBucketByUser(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{Rate: 1, Burst: 0, Window: time.Hour})
	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Same address, different players: separate buckets
	aliceReq := httptest.NewRequest(http.MethodGet, "/v1/guild", nil)
	aliceReq.RemoteAddr = "10.0.0.1:1234"
	aliceReq = aliceReq.WithContext(context.WithValue(aliceReq.Context(), UserIDKey, "user:alice"))
	handler.ServeHTTP(httptest.NewRecorder(), aliceReq)

	bobReq := httptest.NewRequest(http.MethodGet, "/v1/guild", nil)
	bobReq.RemoteAddr = "10.0.0.1:1234"
	bobReq = bobReq.WithContext(context.WithValue(bobReq.Context(), UserIDKey, "user:bob"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bobReq)

	if rec.Code != http.StatusOK {
		t.Errorf("bob must not share alice's bucket, got %d", rec.Code)
	}
}

func TestRateLimit_AnonymousCallersBucketByAddress(t *testing.T) {
	t.Parallel()

	rl := newRateLimiter(t, RateLimitConfig{Rate: 1, Burst: 0, Window: time.Hour})
	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodGet, "/health", nil)
	first.RemoteAddr = "10.0.0.2:1234"
	handler.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodGet, "/health", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, second)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("repeat anonymous calls from one address share a bucket, got %d", rec.Code)
	}

	other := httptest.NewRequest(http.MethodGet, "/health", nil)
	other.RemoteAddr = "10.0.0.3:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	if rec.Code != http.StatusOK {
		t.Errorf("a different address gets its own bucket, got %d", rec.Code)
	}
}

func TestRateLimit_RetryAfterAtLeastOneSecond(t *testing.T) {
	t.Parallel()

	// A tiny window produces sub-second reset times; Retry-After still
	// reports a whole second so clients back off meaningfully
	rl := newRateLimiter(t, RateLimitConfig{Rate: 1, Burst: 0, Window: 10 * time.Millisecond})
	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), keyedRequest(http.MethodGet, "/v1/guild", "", "", "user:alice"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, keyedRequest(http.MethodGet, "/v1/guild", "", "", "user:alice"))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}
}
