package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/internship-simulator/utils/response"
)

// InternalAPIKey guards the internal service-to-service endpoints with a
// shared secret. The evaluator sends it in the X-API-Key header.
func InternalAPIKey(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return response.InternalServerError(c, "Internal API key not configured")
		}

		key := strings.TrimSpace(c.Get("X-API-Key"))
		if key == "" {
			return response.Unauthorized(c, "API key required")
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
			return response.Unauthorized(c, "Invalid API key")
		}

		return c.Next()
	}
}
