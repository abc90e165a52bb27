package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nuptio/internal/infrastructure/ratelimit"
)

// RateLimitMiddleware throttles authenticated HTTP actions with the same
// token buckets the socket relay uses.
type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit applies the named action's bucket to the signed-in caller.
// Anonymous requests pass through; public endpoints have their own guards.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("uid").(string)
			if !ok || uid == "" {
				return next(c)
			}

			allowed, wait := m.limiter.Allow(uid, action)
			if !allowed {
				c.Response().Header().Set("Retry-After", wait.String())
				return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded")
			}

			return next(c)
		}
	}
}
