package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/budgetsnap/backend/internal/domain/error"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 10
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// RateLimiter enforces a fixed-window request limit per subject, backed
// by Redis so the limit holds across instances. Redis failures fail
// open: limiting is protection, not a dependency.
type RateLimiter struct {
	client         *redis.Client
	prefix         string
	maxAttempts    int
	windowDuration time.Duration
	logger         *slog.Logger
}

// NewRateLimiter creates a rate limiter with default settings.
func NewRateLimiter(client *redis.Client, prefix string, logger *slog.Logger) *RateLimiter {
	return NewRateLimiterWithConfig(client, prefix, defaultMaxAttempts, defaultWindowDuration, logger)
}

// NewRateLimiterWithConfig creates a rate limiter with custom settings.
func NewRateLimiterWithConfig(client *redis.Client, prefix string, maxAttempts int, windowDuration time.Duration, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateLimiter{
		client:         client,
		prefix:         prefix,
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
		logger:         logger,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// Authenticated requests are limited per subject, anonymous ones per IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.client == nil {
			c.Next()
			return
		}

		key, ok := GetSubjectIDFromContext(c)
		if !ok {
			key = c.ClientIP()
		}

		allowed, err := rl.allow(c.Request.Context(), key)
		if err != nil {
			rl.logger.Warn("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
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

// allow increments the window counter for the key and checks the limit.
func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", rl.prefix, key)

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// First hit in the window starts the expiry clock.
		if err := rl.client.Expire(ctx, redisKey, rl.windowDuration).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(rl.maxAttempts), nil
}
