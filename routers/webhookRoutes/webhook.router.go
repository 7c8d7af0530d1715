package webhookRoutes

import (
	controllers "lms/controllers/webhook"

	"github.com/gofiber/fiber/v2"
)

// SetupWebhookRoutes wires the identity-provider webhook receiver. No session
// middleware: the signature check is the authentication.
func SetupWebhookRoutes(app *fiber.App) {
	app.Post("/webhooks/identity", controllers.HandleIdentityWebhook)
}
