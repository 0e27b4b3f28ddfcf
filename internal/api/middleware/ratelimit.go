package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/nocdn/transcriptions-ssr/internal/api/errors"
)

// RateLimitConfig bounds how many requests a client may make per window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// DefaultRateLimitConfig allows a burst of submissions without letting one
// client monopolize the transcription backend.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{Requests: 30, Window: time.Minute}
}

// RateLimit enforces a fixed-window per-IP limit backed by Redis. A Redis
// fault fails open.
func RateLimit(client *redis.Client, config RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		window := time.Now().Unix() / int64(config.Window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), window)

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, config.Window)
		}

		if count > int64(config.Requests) {
			HandleError(c, errors.NewRateLimitedError("Too many requests, slow down"))
			return
		}

		c.Next()
	}
}
