package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/wangyukai585/BioAlgoDB/config"
	"github.com/wangyukai585/BioAlgoDB/metrics"
	"github.com/wangyukai585/BioAlgoDB/utils/logging"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const ErrTooManyRequests = "Too many requests. Please try again later."

// Limiter decides whether the client identified by key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Backend() string
}

// RateLimiter is an in-process token bucket per client. Buckets idle long
// enough to be full again are dropped.
type RateLimiter struct {
	visitors  map[string]*Visitor
	mu        sync.Mutex
	rate      int           // Tokens added per interval
	burst     int           // Burst capacity
	interval  time.Duration // Refill interval
	idle      time.Duration // Time after which an untouched bucket is full
	lastSweep time.Time
	now       func() time.Time
}

type Visitor struct {
	tokens      int
	lastUpdated time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	// without refills an exhausted bucket must be kept forever
	var idle time.Duration
	if cfg.Rate > 0 {
		refills := (cfg.Burst + cfg.Rate - 1) / cfg.Rate
		if refills < 1 {
			refills = 1
		}
		idle = time.Duration(refills) * cfg.Interval
	}
	return &RateLimiter{
		visitors: make(map[string]*Visitor),
		rate:     cfg.Rate,
		burst:    cfg.Burst,
		interval: cfg.Interval,
		idle:     idle,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Backend() string {
	return "memory"
}

func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if rl.idle > 0 && now.Sub(rl.lastSweep) >= rl.interval {
		rl.sweep(now)
	}
	visitor, exists := rl.visitors[key]
	if !exists {
		visitor = &Visitor{tokens: rl.burst, lastUpdated: now}
		rl.visitors[key] = visitor
	}

	// Refill tokens
	refill := int(now.Sub(visitor.lastUpdated) / rl.interval)
	if refill > 0 {
		visitor.tokens += refill * rl.rate
		if visitor.tokens > rl.burst {
			visitor.tokens = rl.burst
		}
		visitor.lastUpdated = now
	}

	if visitor.tokens > 0 {
		visitor.tokens--
		return true, nil
	}
	return false, nil
}

// sweep drops buckets that would have refilled completely; a new bucket
// starts full, so forgetting them changes no decision
func (rl *RateLimiter) sweep(now time.Time) {
	for key, v := range rl.visitors {
		if now.Sub(v.lastUpdated) >= rl.idle {
			delete(rl.visitors, key)
		}
	}
	rl.lastSweep = now
}

// RedisRateLimiter shares a fixed window counter between API replicas
type RedisRateLimiter struct {
	client   *redis.Client
	limit    int
	interval time.Duration
	prefix   string
}

// NewRedisRateLimiter allows cfg.Burst requests per cfg.Interval and client.
// cfg.Rate only drives the in-memory token bucket.
func NewRedisRateLimiter(client *redis.Client, cfg config.RateLimitConfig) *RedisRateLimiter {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	return &RedisRateLimiter{
		client:   client,
		limit:    cfg.Burst,
		interval: cfg.Interval,
		prefix:   "bioalgodb:ratelimit:",
	}
}

func (rl *RedisRateLimiter) Backend() string {
	return "redis"
}

func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := time.Now().UnixNano() / int64(rl.interval)
	redisKey := rl.prefix + key + ":" + time.Unix(0, window*int64(rl.interval)).UTC().Format(time.RFC3339)

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.interval)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(rl.limit), nil
}

// RateLimiterMiddleware answers 429 once a client exhausted its budget.
// A failing limiter backend lets the request through.
func RateLimiterMiddleware(rl Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		allowed, err := rl.Allow(c.Request.Context(), ip)
		if err != nil {
			logging.FromContext(c).WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			metrics.RateLimiterRejections.WithLabelValues(rl.Backend()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": ErrTooManyRequests})
			return
		}
		c.Next()
	}
}
