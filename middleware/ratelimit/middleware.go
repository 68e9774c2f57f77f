package ratelimit

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler returns a Fiber middleware enforcing limit requests per window,
// keyed by client IP and path. On Redis errors the request is allowed
// through (fail-open): a broken limiter must not take the API down with it.
func Handler(limiter *Limiter, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", c.IP(), c.Path())

		result, err := limiter.Allow(c.UserContext(), key, limit, window)
		if err != nil {
			log.Printf("[ratelimit] Check failed, allowing request: %v", err)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))

		if !result.Allowed {
			retryAfter := int(time.Until(result.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "too_many_requests",
				"message": "Too many attempts, try again later",
			})
		}

		return c.Next()
	}
}
