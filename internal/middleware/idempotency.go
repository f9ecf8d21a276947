package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"
)

// ReplayCache remembers the response of each keyed mutating request so a
// client retry delivers the original outcome instead of resolving twice.
// Without it a retried recruit or purchase would debit the guild again.
type ReplayCache struct {
	mu      sync.Mutex
	records map[string]*replayRecord
	ttl     time.Duration
	stop    chan struct{}
}

// replayRecord is one cached resolution. While settled is open the first
// request is still resolving and duplicates block on it.
type replayRecord struct {
	status  int
	header  http.Header
	body    []byte
	expires time.Time
	settled chan struct{}
}

func (rec *replayRecord) isSettled() bool {
	select {
	case <-rec.settled:
		return true
	default:
		return false
	}
}

// ReplayCacheConfig holds configuration for the replay cache
type ReplayCacheConfig struct {
	TTL     time.Duration // how long a settled response replays (default 24h)
	Cleanup time.Duration // sweep interval for expired records (default 1h)
}

// NewReplayCache creates a replay cache and starts its expiry sweep
func NewReplayCache(cfg ReplayCacheConfig) *ReplayCache {
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = time.Hour
	}

	c := &ReplayCache{
		records: make(map[string]*replayRecord),
		ttl:     cfg.TTL,
		stop:    make(chan struct{}),
	}
	go c.sweep(cfg.Cleanup)
	return c
}

// Stop halts the expiry sweep
func (c *ReplayCache) Stop() {
	close(c.stop)
}

func (c *ReplayCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, rec := range c.records {
				if rec.isSettled() && rec.expires.Before(now) {
					delete(c.records, key)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

// fingerprint scopes a client key to the user and the exact request. The
// same key with a different body is a different request, not a replay.
func fingerprint(userID, clientKey, method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(userID))
	h.Write([]byte(clientKey))
	h.Write([]byte(method))
	h.Write([]byte(path))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// claim returns the record for a fingerprint and whether this caller owns
// the resolution. A stale settled record is replaced.
func (c *ReplayCache) claim(key string) (*replayRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rec, ok := c.records[key]; ok {
		if !rec.isSettled() || rec.expires.After(time.Now()) {
			return rec, false
		}
	}

	rec := &replayRecord{settled: make(chan struct{})}
	c.records[key] = rec
	return rec, true
}

func (c *ReplayCache) settle(rec *replayRecord, status int, header http.Header, body []byte) {
	c.mu.Lock()
	rec.status = status
	rec.header = header
	rec.body = body
	rec.expires = time.Now().Add(c.ttl)
	c.mu.Unlock()
	close(rec.settled)
}

func writeReplay(w http.ResponseWriter, rec *replayRecord) {
	for k, vals := range rec.header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(rec.status)
	_, _ = w.Write(rec.body)
}

// captureWriter records the response so the cache can replay it later
type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency returns middleware that replays keyed POST and PATCH
// responses. Clients opt in per request with an Idempotency-Key header;
// replayed responses carry X-Idempotency-Replayed.
func Idempotency(cache *ReplayCache) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			clientKey := r.Header.Get("Idempotency-Key")
			if clientKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID := GetUserID(r.Context())
			if userID == "" {
				userID = r.RemoteAddr
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := fingerprint(userID, clientKey, r.Method, r.URL.Path, body)

			rec, owned := cache.claim(key)
			if !owned {
				// A duplicate in flight blocks until the first request
				// settles, then both return the same outcome.
				<-rec.settled
				writeReplay(w, rec)
				return
			}

			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)

			cache.settle(rec, cw.status, cw.Header().Clone(), cw.body.Bytes())
		})
	}
}
