package userRoutes

import (
	controllers "lms/controllers/userControllers"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes wires the admin-only role management endpoints. Moderators
// are kept out here, unlike the rest of the authoring surface.
func SetupUserRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/users")

	adminGroup.Put("/:externalId/role", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), validators.SetRole(), controllers.SetUserRole)
	adminGroup.Delete("/:externalId/role", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), validators.RemoveRole(), controllers.RemoveUserRole)
}
