package controllers

import (
	"lms/middleware"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// UploadVideo forwards the uploaded file to the external media store and
// returns the hosted URL and asset id verbatim. The store decides what it
// got (video or image) via the auto resource type.
func UploadVideo(c *fiber.Ctx) error {
	if externalID, ok := c.Locals("externalId").(string); !ok || externalID == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil || file == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file uploaded!", nil)
	}

	result, err := utils.UploadToMediaStore(file)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error uploading video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video uploaded successfully!", result)
}
