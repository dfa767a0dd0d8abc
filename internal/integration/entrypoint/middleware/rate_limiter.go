package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/integration/entrypoint/dto"
)

const (
	defaultMaxAttempts    = 5
	defaultWindowDuration = 1 * time.Minute
	rateLimitKeyPrefix    = "ratelimit:"
)

// counterStore counts attempts per key inside a fixed window.
type counterStore interface {
	// increment adds one attempt and returns the attempts in the current
	// window and when the window resets.
	increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
	reset(ctx context.Context) error
}

// RateLimiter provides IP-based fixed window rate limiting. Counters live in
// Redis when a client is given, so every API instance shares them.
type RateLimiter struct {
	store          counterStore
	maxAttempts    int
	windowDuration time.Duration
	disabled       bool
}

// NewRateLimiterWithConfig creates an in-memory rate limiter with custom settings.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return newRateLimiter(&memoryStore{entries: make(map[string]*rateLimitEntry)}, maxAttempts, windowDuration)
}

// NewRedisRateLimiter creates a rate limiter whose counters live in Redis.
func NewRedisRateLimiter(client *redis.Client, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	return newRateLimiter(&redisStore{client: client}, maxAttempts, windowDuration)
}

func newRateLimiter(store counterStore, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if windowDuration <= 0 {
		windowDuration = defaultWindowDuration
	}
	return &RateLimiter{store: store, maxAttempts: maxAttempts, windowDuration: windowDuration}
}

// Disable turns the limiter into a pass-through, for test environments.
func (rl *RateLimiter) Disable() {
	rl.disabled = true
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// A failing store lets the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.disabled {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		attempts, resetAt, err := rl.store.increment(c.Request.Context(), clientIP, rl.windowDuration)
		if err != nil {
			slog.Warn("Rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		remaining := rl.maxAttempts - attempts
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxAttempts))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if attempts > rl.maxAttempts {
			retryAfter := int(time.Until(resetAt).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Reset clears the rate limiter state.
func (rl *RateLimiter) Reset(ctx context.Context) error {
	return rl.store.reset(ctx)
}

type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
}

func (s *memoryStore) increment(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, e := range s.entries {
		if now.After(e.resetTime) {
			delete(s.entries, k)
		}
	}

	entry, ok := s.entries[key]
	if !ok {
		entry = &rateLimitEntry{resetTime: now.Add(window)}
		s.entries[key] = entry
	}
	entry.attempts++
	return entry.attempts, entry.resetTime, nil
}

func (s *memoryStore) reset(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*rateLimitEntry)
	return nil
}

type redisStore struct {
	client *redis.Client
}

func (s *redisStore) increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	redisKey := rateLimitKeyPrefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}

	remaining := ttl.Val()
	if remaining <= 0 {
		if err := s.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
		remaining = window
	}
	return int(incr.Val()), time.Now().Add(remaining), nil
}

func (s *redisStore) reset(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, rateLimitKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
