package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	userValidator "lms/validators/userValidator"
	"log"

	"github.com/gofiber/fiber/v2"
)

// SetUserRole writes the role into the identity provider's metadata and then
// refreshes the mirror. The provider write is the one that matters; a mirror
// failure is logged only.
func SetUserRole(c *fiber.Ctx) error {
	externalID := c.Locals("targetExternalId").(string)

	reqData, ok := c.Locals("validatedRole").(*userValidator.SetRoleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := utils.UpdateIdentityRole(externalID, reqData.Role); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to set role!", nil)
	}

	if err := database.Database.Db.Model(&models.User{}).
		Where("external_id = ?", externalID).
		Update("role", reqData.Role).Error; err != nil {
		log.Printf("Role mirror update failed for %s: %v", externalID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", fiber.Map{
		"role": reqData.Role,
	})
}

// RemoveUserRole clears the metadata role; the mirror falls back to student.
func RemoveUserRole(c *fiber.Ctx) error {
	externalID := c.Locals("targetExternalId").(string)

	if err := utils.ClearIdentityRole(externalID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove role!", nil)
	}

	if err := database.Database.Db.Model(&models.User{}).
		Where("external_id = ?", externalID).
		Update("role", models.RoleStudent).Error; err != nil {
		log.Printf("Role mirror update failed for %s: %v", externalID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role removed successfully!", nil)
}
