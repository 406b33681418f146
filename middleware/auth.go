// middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the authenticated user id set by the
// Gateway. Routes behind it can only act on the caller's own profile — the
// ledger never accepts a target user from the request body.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			log.Printf("❌ [USER_CTX] X-User-ID missing on secured route: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

// AdminOnly gates admin routes on the gateway-forwarded roles header.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles := c.Get("X-User-Roles")
		if !containsRole(roles, "admin") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin role required",
			})
		}
		return c.Next()
	}
}

func containsRole(rolesHeader, want string) bool {
	for _, r := range strings.Split(rolesHeader, ",") {
		if strings.TrimSpace(r) == want {
			return true
		}
	}
	return false
}
