package mediaRoutes

import (
	controllers "lms/controllers/media"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupMediaRoutes wires the media upload passthrough.
func SetupMediaRoutes(app *fiber.App) {
	mediaGroup := app.Group("/media")

	mediaGroup.Post("/upload-video", middleware.JWTMiddleware, controllers.UploadVideo)
}
