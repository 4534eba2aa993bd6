package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// PublicCache marks successful anonymous GET responses as cacheable by shared caches.
// Authenticated responses may include drafts and stay private.
func PublicCache(maxAge time.Duration) fiber.Handler {
	value := "public, max-age=" + strconv.Itoa(int(maxAge.Seconds()))
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() == fiber.MethodGet && c.Response().StatusCode() == fiber.StatusOK {
			if _, signedIn := c.Locals(LocalUserID).(string); signedIn {
				c.Set(fiber.HeaderCacheControl, "private, no-store")
			} else {
				c.Set(fiber.HeaderCacheControl, value)
			}
		}
		return err
	}
}
