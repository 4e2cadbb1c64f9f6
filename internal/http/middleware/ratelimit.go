// In-memory token-bucket rate limiting, one bucket per client.
//
// The limiter exists for edge abuse control and relay cost protection (every
// /smart call spends Gemini quota); it is process-local, so a horizontally
// scaled deployment would need a shared store instead. Idle buckets are
// evicted opportunistically during lookups to bound the bucket map.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// bucketTTL is how long a bucket may sit idle before eviction.
	bucketTTL = 10 * time.Minute
	// cleanupEvery is the lookup count between eviction sweeps.
	cleanupEvery = 5000
)

// keyFunc maps a request to its bucket identity. Implementations must return
// a stable string for the duration of a request.
type keyFunc func(*gin.Context) string

// KeyByClientIP keys buckets by client IP, the only stable handle this
// unauthenticated API has. The "ip:" prefix leaves the namespace open for
// future identity sources.
func KeyByClientIP() keyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter hands out one token bucket per key, creating buckets on demand
// in a mutex-guarded map. Safe for concurrent use.
type RateLimiter struct {
	rps     rate.Limit
	burst   int
	keyFn   keyFunc
	mu      sync.Mutex
	buckets map[string]*bucket

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter builds a limiter replenishing rps tokens per second with the
// given burst size per key. A burst of 0 would reject everything, so values
// <= 0 are coerced to 1.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		keyFn:   keyFn,
		buckets: make(map[string]*bucket),
		ttl:     bucketTTL,
	}
}

// evictIdle removes buckets idle for ttl or longer. Caller holds rl.mu.
func (rl *RateLimiter) evictIdle(now time.Time) {
	for k, b := range rl.buckets {
		if now.Sub(b.seen) >= rl.ttl {
			delete(rl.buckets, k)
		}
	}
}

// bucketFor returns the bucket for key, creating it when absent. Every
// cleanupEvery lookups it sweeps idle entries first, so a stale bucket is
// evicted even when it is the one being fetched.
func (rl *RateLimiter) bucketFor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanupN++
	if rl.cleanupN >= cleanupEvery {
		rl.evictIdle(now)
		rl.cleanupN = 0
	}

	if b, ok := rl.buckets[key]; ok {
		b.seen = now
		return b.lim
	}

	b := &bucket{lim: rate.NewLimiter(rl.rps, rl.burst), seen: now}
	rl.buckets[key] = b
	return b.lim
}

// IsRateBypass reports whether IdempotencyValidator flagged this request as a
// replay, in which case Handler serves it without spending a token.
func IsRateBypass(c *gin.Context) bool {
	return c.GetBool(ctxKeyRateBypass)
}

// Handler enforces the per-key limit. Denied requests get a 429 with
// Retry-After: 1 and a compact body carrying the request id:
//
//	{"request_id": "<uuid>", "code": "rate_limited", "message": "rate limit exceeded"}
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}

		if rl.bucketFor(rl.keyFn(c)).Allow() {
			c.Next()
			return
		}

		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.Writer.Header().Get(requestIDHeader),
			"code":       "rate_limited",
			"message":    "rate limit exceeded",
		})
	}
}
