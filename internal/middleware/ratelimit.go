package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"TripPlanner/config"
	"TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
	"TripPlanner/pkg/response"
	"TripPlanner/storage/redis"
)

type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
	KeyPrefix   string
	// BlockDuration keeps a client out after it exceeds the limit.
	BlockDuration time.Duration
	// WritesOnly leaves GET, HEAD and OPTIONS unlimited.
	WritesOnly bool
}

// WriteRateLimitConfig limits mutations per client IP from RATE_LIMIT_RPS.
func WriteRateLimitConfig() RateLimitConfig {
	rps := config.Cfg.RateLimitRPS
	if rps <= 0 {
		rps = 20
	}
	return RateLimitConfig{
		Window:        10 * time.Second,
		MaxRequests:   rps * 10,
		KeyPrefix:     "rate:write",
		BlockDuration: 30 * time.Second,
		WritesOnly:    true,
	}
}

type RateLimiter struct {
	config RateLimitConfig
	client func() *redislib.Client
}

func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	return &RateLimiter{config: config, client: redis.Client}
}

func (rl *RateLimiter) key(c *app.RequestContext) string {
	return redis.Key(rl.config.KeyPrefix, "ip", c.ClientIP())
}

func (rl *RateLimiter) blockKey(c *app.RequestContext) string {
	return redis.Key(rl.config.KeyPrefix, "block", "ip", c.ClientIP())
}

// Allow counts the request in a sliding window kept in a sorted set.
func (rl *RateLimiter) Allow(ctx context.Context, c *app.RequestContext) (bool, int, error) {
	key := rl.key(c)
	now := time.Now()
	windowStart := now.Add(-rl.config.Window)

	pipe := rl.client().Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	pipe.ZAdd(ctx, key, redislib.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	zcard := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window+10*time.Second)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	count := int(zcard.Val())
	return count <= rl.config.MaxRequests, count, nil
}

func (rl *RateLimiter) Block(ctx context.Context, c *app.RequestContext) error {
	return rl.client().Set(ctx, rl.blockKey(c), "1", rl.config.BlockDuration).Err()
}

func (rl *RateLimiter) IsBlocked(ctx context.Context, c *app.RequestContext) (bool, error) {
	n, err := rl.client().Exists(ctx, rl.blockKey(c)).Result()
	return n > 0, err
}

func isReadMethod(method string) bool {
	switch method {
	case consts.MethodGet, consts.MethodHead, consts.MethodOptions:
		return true
	}
	return false
}

// RateLimitMiddleware rejects clients over the limit with 429. When Redis is
// unreachable requests pass through.
func RateLimitMiddleware(config RateLimitConfig) app.HandlerFunc {
	limiter := NewRateLimiter(config)

	return func(ctx context.Context, c *app.RequestContext) {
		if config.WritesOnly && isReadMethod(string(c.Method())) {
			c.Next(ctx)
			return
		}

		blocked, err := limiter.IsBlocked(ctx, c)
		if err != nil {
			logger.Logger.Warn("Failed to check block status", zap.Error(err))
			c.Next(ctx)
			return
		}
		if blocked {
			response.Error(ctx, c, errors.TooManyRequests)
			c.Abort()
			return
		}

		allowed, count, err := limiter.Allow(ctx, c)
		if err != nil {
			logger.Logger.Warn("Failed to check rate limit", zap.Error(err))
			c.Next(ctx)
			return
		}

		remaining := config.MaxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Response.Header.Set("X-RateLimit-Limit", strconv.Itoa(config.MaxRequests))
		c.Response.Header.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			if err := limiter.Block(ctx, c); err != nil {
				logger.Logger.Warn("Failed to block client", zap.Error(err))
			}
			logger.Logger.Info("Rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", string(c.Path())),
				zap.Int("count", count),
			)
			response.Error(ctx, c, errors.TooManyRequests)
			c.Abort()
			return
		}

		c.Next(ctx)
	}
}

func WriteRateLimitMiddleware() app.HandlerFunc {
	return RateLimitMiddleware(WriteRateLimitConfig())
}
