// Package middleware provides the HTTP middleware applied in front of
// the handlers.  Only rate limiting remains here; the engines perform
// their own validation.
package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/apartment-rental/internal/config"
)

// fixed-window counter: the first request of a window creates the key
// with an expiry, later requests increment it, and the count is
// compared against the limit.  Runs as one atomic script so two racing
// requests cannot both create the key without an expiry.
const windowScript = `
local current = redis.call('INCR', KEYS[1])
if current == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
return { current, ttl }
`

// RateLimit returns a fixed-window limiter keyed by client IP and
// route.  When the limiter is disabled or the Redis client is nil the
// middleware passes every request through.  Redis failures also fail
// open: throttling is protection, not a dependency.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	script := redis.NewScript(windowScript)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("%s:%s:%s", cfg.Prefix, c.RealIP(), c.Path())
			ctx := c.Request().Context()
			vals, err := script.Run(ctx, rdb, []string{key}, cfg.Window.Milliseconds()).Int64Slice()
			if err != nil || len(vals) != 2 {
				if err != nil {
					c.Logger().Warnf("ratelimit: redis error for key=%s: %v", key, err)
				}
				return next(c)
			}
			current, ttlMs := vals[0], vals[1]
			remaining := int64(cfg.Limit) - current
			if remaining < 0 {
				remaining = 0
			}
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			if current > int64(cfg.Limit) {
				if ttlMs > 0 {
					h.Set("Retry-After", strconv.FormatInt((ttlMs+999)/1000, 10))
				}
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
