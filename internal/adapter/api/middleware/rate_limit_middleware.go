package middleware

import (
	"github.com/labstack/echo/v4"

	"nexusmarket/internal/infrastructure/ratelimit"
	"nexusmarket/pkg/errors"
	"nexusmarket/pkg/logger"
	"nexusmarket/pkg/response"
)

// RateLimitByIP throttles an action per client address. A nil limiter lets
// every request through.
func RateLimitByIP(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if allowed, wait := limiter.Allow(ip, action); !allowed {
				logger.Warn("RateLimitByIP: %s from %s blocked for %v", action, ip, wait)
				return response.Error(c, errors.TooManyRequests("Too many requests. Please try again later", wait))
			}
			return next(c)
		}
	}
}
