package userValidator

import (
	"lms/middleware"
	"lms/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SetRoleRequest is the body of PUT /admin/users/:externalId/role.
type SetRoleRequest struct {
	Role string `json:"role"`
}

func SetRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		externalID := strings.TrimSpace(c.Params("externalId"))
		if externalID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
		}

		reqData := new(SetRoleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Role = strings.TrimSpace(reqData.Role)
		if !models.ValidRole(reqData.Role) {
			errors := map[string]string{"role": "Role must be one of admin, moderator or student!"}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("targetExternalId", externalID)
		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}

func RemoveRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		externalID := strings.TrimSpace(c.Params("externalId"))
		if externalID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
		}

		c.Locals("targetExternalId", externalID)
		return c.Next()
	}
}
