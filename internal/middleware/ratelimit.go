package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/coursehub-backend/internal/config"
	"github.com/stemsi/coursehub-backend/internal/response"
)

// Limiter decides whether one more request under key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit returns a Gin middleware that limits requests per client IP
// within scope. Limiter errors let the request through.
func RateLimit(l Limiter, scope string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.CacheKey.RateLimitKey(scope, c.ClientIP())

		allowed, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn().Err(err).
				Str("request_id", response.RequestID(c)).
				Str("key", key).
				Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if !allowed {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}

// MemoryLimiter implements a simple per-key token bucket held in process memory.
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // Tokens per interval
	interval time.Duration // Refill interval
	now      func() time.Time
}

type visitor struct {
	tokens   int
	lastSeen time.Time
}

// NewMemoryLimiter creates a MemoryLimiter (e.g., 10 requests per minute).
func NewMemoryLimiter(rate int, interval time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		interval: interval,
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, exists := l.visitors[key]
	if !exists {
		v = &visitor{tokens: l.rate, lastSeen: now}
		l.visitors[key] = v
	}

	// Refill tokens based on elapsed time.
	refill := int(now.Sub(v.lastSeen)/l.interval) * l.rate
	if refill > 0 {
		v.tokens += refill
		if v.tokens > l.rate {
			v.tokens = l.rate
		}
		v.lastSeen = now
	}

	if v.tokens <= 0 {
		return false, nil
	}
	v.tokens--
	return true, nil
}

// RunCleanup evicts stale visitors every minute until ctx is done.
func (l *MemoryLimiter) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *MemoryLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > 3*l.interval {
			delete(l.visitors, key)
		}
	}
}

// RedisLimiter is a fixed-window counter shared by every server instance.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := fmt.Sprintf("%s:%d", key, l.now().UnixNano()/int64(l.window))

	pipe := l.rdb.TxPipeline()
	count := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}

	return count.Val() <= int64(l.limit), nil
}
