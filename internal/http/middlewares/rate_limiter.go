package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Augustwise/fullstack-task-manager/internal/errors"
	"github.com/Augustwise/fullstack-task-manager/internal/ratelimit"
)

// RateLimiter admits requests per client IP under scope. A limiter backend
// failure lets the request through.
func RateLimiter(limiter ratelimit.Limiter, scope string, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := scope + ":" + c.RealIP()

			ok, err := limiter.Allow(ctx, key)
			if err != nil {
				logger.ErrorContext(ctx, "rate limiter unavailable", "scope", scope, "error", err)
				return next(c)
			}
			if !ok {
				logger.WarnContext(ctx, "rate limit exceeded", "scope", scope, "ip", c.RealIP())
				return apperrors.ErrRateLimited
			}

			return next(c)
		}
	}
}
