package middleware

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/health-first/health-first-server/internal/httperr"
	"github.com/health-first/health-first-server/internal/ratelimit"
)

// RateLimit throttles by client IP. Limiter failures (e.g. Redis down)
// fail open so login never hard-depends on the limiter backend.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Println("rate limiter error:", err)
			c.Next()
			return
		}
		if !ok {
			httperr.TooManyRequests(c, httperr.CodeRateLimited, "too many attempts, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
