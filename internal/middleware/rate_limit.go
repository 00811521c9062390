package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	appErrors "github.com/noah-isme/booking-api/pkg/errors"
	"github.com/noah-isme/booking-api/pkg/response"
)

// RateLimiterStore hands out one token bucket per client key.
type RateLimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiterStore allows perMinute requests per key with the given burst.
func NewRateLimiterStore(perMinute, burst int) *RateLimiterStore {
	if perMinute <= 0 {
		perMinute = 120
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiterStore{
		limiters: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		idle:     10 * time.Minute,
	}
}

// Allow consumes a token for key.
func (s *RateLimiterStore) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	v, ok := s.limiters[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.limiters[key] = v
	}
	v.lastSeen = now

	// drop buckets of clients gone quiet
	if len(s.limiters) > 1024 {
		for k, other := range s.limiters {
			if now.Sub(other.lastSeen) > s.idle {
				delete(s.limiters, k)
			}
		}
	}
	return v.limiter.Allow()
}

// RateLimit rejects clients exceeding the store's budget, keyed by client IP.
func RateLimit(store *RateLimiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.Next()
			return
		}
		if !store.Allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			response.Error(c, appErrors.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
