package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that allows only the given roles through.
// The check runs against the verified token claim, never the users mirror:
// the identity provider owns roles and the local copy may be stale.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized: role claim missing",
				"data":    nil,
			})
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You do not have permission to access this resource!",
			"data":    nil,
		})
	}
}
