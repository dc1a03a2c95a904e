package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/mroshb/shooty_game/pkg/errors"
	"github.com/mroshb/shooty_game/pkg/logger"
)

// Limiter counts requests per key in fixed windows.
type Limiter interface {
	Allow(ctx context.Context, key string, max int) (bool, error)
}

// RateLimiter implements a simple in-memory fixed window limiter
type RateLimiter struct {
	windows map[string]*window
	mu      sync.Mutex
	period  time.Duration
	done    chan struct{}
	once    sync.Once
}

type window struct {
	requests  int
	resetTime time.Time
}

// NewRateLimiter creates a new in-memory rate limiter
func NewRateLimiter(period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		period:  period,
		done:    make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) Allow(_ context.Context, key string, max int) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	w, exists := rl.windows[key]
	if !exists || now.After(w.resetTime) {
		rl.windows[key] = &window{
			requests:  1,
			resetTime: now.Add(rl.period),
		}
		return true, nil
	}

	if w.requests >= max {
		return false, nil
	}

	w.requests++
	return true, nil
}

// Remaining returns how many requests key has left in its current window
func (rl *RateLimiter) Remaining(key string, max int) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, exists := rl.windows[key]
	if !exists || time.Now().After(w.resetTime) {
		return max
	}

	remaining := max - w.requests
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup removes expired entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, w := range rl.windows {
				if now.After(w.resetTime) {
					delete(rl.windows, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.done) })
}

// Reset clears all rate limits (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.windows = make(map[string]*window)
}

// RedisRateLimiter shares fixed windows between API instances through Redis.
type RedisRateLimiter struct {
	client *redis.Client
	period time.Duration
	prefix string
}

func NewRedisRateLimiter(client *redis.Client, period time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		period: period,
		prefix: "shooty:ratelimit:",
	}
}

func (rl *RedisRateLimiter) Allow(ctx context.Context, key string, max int) (bool, error) {
	bucket := time.Now().UnixNano() / int64(rl.period)
	redisKey := fmt.Sprintf("%s%s:%d", rl.prefix, key, bucket)

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.period)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= int64(max), nil
}

type limitKey struct {
	key string
	max int
}

// RateLimit applies the per-IP limit to every request and the per-user limit
// to authenticated ones. Limiter failures let the request through.
func RateLimit(limiter Limiter, perUser, perIP int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		keys := []limitKey{{"ip:" + c.ClientIP(), perIP}}
		if actor := ActorFrom(c); actor != nil {
			keys = append(keys, limitKey{fmt.Sprintf("user:%d", actor.UserID), perUser})
		}

		for _, k := range keys {
			if k.max <= 0 {
				continue
			}
			allowed, err := limiter.Allow(ctx, k.key, k.max)
			if err != nil {
				logger.Warn("Rate limiter unavailable", "key", k.key, "error", err)
				continue
			}
			if !allowed {
				abortWithError(c, http.StatusTooManyRequests, errors.ErrCodeRateLimitExceeded, "too many requests")
				return
			}
		}

		c.Next()
	}
}
