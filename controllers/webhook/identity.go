package controllers

import (
	"encoding/json"
	"errors"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type webhookUserData struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
	PublicMetadata struct {
		Role string `json:"role"`
	} `json:"public_metadata"`
}

type webhookEvent struct {
	Type string          `json:"type"`
	Data webhookUserData `json:"data"`
}

func (d webhookUserData) displayName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

func (d webhookUserData) primaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

// HandleIdentityWebhook keeps the local user mirror in sync with the identity
// provider. The payload is trusted only after its signature checks out.
// Store failures after that point are logged, not surfaced: the provider
// does not retry on our behalf and a 5xx would only make it redeliver a
// payload we already refused to apply.
func HandleIdentityWebhook(c *fiber.Ctx) error {
	payload := c.Body()

	err := utils.VerifyWebhookSignature(
		config.AppConfig.WebhookSecret,
		c.Get("webhook-id"),
		c.Get("webhook-timestamp"),
		c.Get("webhook-signature"),
		payload,
	)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook signature!", nil)
	}

	var evt webhookEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook payload!", nil)
	}

	db := database.Database.Db

	switch evt.Type {
	case "user.created":
		role := evt.Data.PublicMetadata.Role
		if !models.ValidRole(role) {
			role = models.RoleModerator
		}

		var existing models.User
		lookupErr := db.Where("external_id = ?", evt.Data.ID).First(&existing).Error
		if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			user := models.User{
				ExternalID: evt.Data.ID,
				Name:       evt.Data.displayName(),
				Email:      evt.Data.primaryEmail(),
				Role:       role,
			}
			if err := db.Create(&user).Error; err != nil {
				log.Printf("Webhook: failed to create user mirror %s: %v", evt.Data.ID, err)
				break
			}
			go utils.SendWelcomeEmail(user.Email, user.Name)
		} else if lookupErr != nil {
			log.Printf("Webhook: user lookup failed for %s: %v", evt.Data.ID, lookupErr)
			break
		}

		// Push the role we stored back into the provider's metadata so both
		// copies agree from the first event on.
		if err := utils.UpdateIdentityRole(evt.Data.ID, role); err != nil {
			log.Printf("Webhook: failed to sync role for %s: %v", evt.Data.ID, err)
		}

	case "user.updated":
		role := evt.Data.PublicMetadata.Role
		if !models.ValidRole(role) {
			role = models.RoleStudent
		}

		updates := map[string]interface{}{
			"name":  evt.Data.displayName(),
			"email": evt.Data.primaryEmail(),
			"role":  role,
		}
		if err := db.Model(&models.User{}).Where("external_id = ?", evt.Data.ID).Updates(updates).Error; err != nil {
			log.Printf("Webhook: failed to update user mirror %s: %v", evt.Data.ID, err)
		}

	case "user.deleted":
		if err := db.Where("external_id = ?", evt.Data.ID).Delete(&models.User{}).Error; err != nil {
			log.Printf("Webhook: failed to delete user mirror %s: %v", evt.Data.ID, err)
		}

	default:
		log.Printf("Webhook: ignoring event type %q", evt.Type)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Webhook processed", nil)
}
