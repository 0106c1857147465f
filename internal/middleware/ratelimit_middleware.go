// internal/middleware/ratelimit_middleware.go
package middleware

import (
	"context"
	"math"
	"strconv"

	"client-bff/internal/pkg/ratelimit"
	"client-bff/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Limiter counts one request for subject on route.
type Limiter interface {
	CheckAPIRateLimit(ctx context.Context, subject, route string) (ratelimit.Result, error)
}

// RateLimit limits each principal per route. Anonymous callers are keyed by
// client IP. Limiter errors let the request through.
func RateLimit(limiter Limiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := "ip:" + c.ClientIP()
		if p, ok := GetPrincipal(c); ok {
			subject = p.Realm + ":" + p.Subject
		}
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		res, err := limiter.CheckAPIRateLimit(c.Request.Context(), subject, route)
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request",
				zap.String("route", route),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))

		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.ResetIn.Seconds()))))
			response.TooManyRequests(c, "rate limit exceeded, try again later")
			return
		}

		c.Next()
	}
}
