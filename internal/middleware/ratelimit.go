package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/items-api/internal/errors"
	"github.com/yukikurage/items-api/internal/ratelimit"
)

// RateLimit rejects requests over the limiter's budget per client IP and route.
// Requests pass through when the limiter itself fails.
func RateLimit(limiter ratelimit.Limiter, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn("rate limiter unavailable", "requestId", GetRequestID(c), "error", err)
			c.Next()
			return
		}
		if !allowed {
			apierrors.TooManyRequests(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
