package middleware

import (
	"context"
	"fmt"
	"time"

	"backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

type RateLimitConfig struct {
	Redis     *redis.Client
	Requests  int
	Window    time.Duration
	KeyPrefix string
	SkipPaths []string
}

// RateLimiter enforces a per-client sliding window limit backed by Redis
// sorted sets. Authenticated requests are keyed by user id, anonymous
// ones by client IP.
type RateLimiter struct {
	config RateLimitConfig
}

func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rate_limit"
	}
	if config.Requests <= 0 {
		config.Requests = 100
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	return &RateLimiter{config: config}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	skip := make(map[string]struct{}, len(rl.config.SkipPaths))
	for _, p := range rl.config.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if rl.config.Redis == nil {
			c.Next()
			return
		}
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		key := rl.key(c)
		allowed, remaining, err := rl.check(c.Request.Context(), key)
		if err != nil {
			// Fail open so a Redis outage does not take the API down.
			logrus.Errorf("Rate limit check failed: %v", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.config.Requests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if !allowed {
			utils.TooManyRequestsResponse(c, "Rate limit exceeded, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) key(c *gin.Context) string {
	if userID := c.GetString("userId"); userID != "" {
		return fmt.Sprintf("%s:user:%s", rl.config.KeyPrefix, userID)
	}
	return fmt.Sprintf("%s:ip:%s", rl.config.KeyPrefix, c.ClientIP())
}

func (rl *RateLimiter) check(ctx context.Context, key string) (bool, int, error) {
	now := time.Now()

	pipe := rl.config.Redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now.Add(-rl.config.Window).UnixNano()))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, &redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})
	pipe.Expire(ctx, key, rl.config.Window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	current := int(countCmd.Val())
	remaining := rl.config.Requests - current - 1
	if remaining < 0 {
		remaining = 0
	}
	return current < rl.config.Requests, remaining, nil
}
