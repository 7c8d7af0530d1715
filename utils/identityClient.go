package utils

import (
	"fmt"
	"lms/config"
	"log"

	"github.com/go-resty/resty/v2"
)

// The identity provider owns roles; these calls write its user metadata.
// The local users table is only a mirror and gets updated separately.

func patchIdentityMetadata(externalID string, role interface{}) error {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.IdentityApiKey).
		SetBody(map[string]interface{}{
			"public_metadata": map[string]interface{}{"role": role},
		}).
		Patch(fmt.Sprintf("%s/users/%s/metadata", config.AppConfig.IdentityApiURL, externalID))
	if err != nil {
		log.Printf("Identity metadata update failed for %s: %v", externalID, err)
		return err
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		log.Printf("Identity metadata update rejected for %s: %s", externalID, resp.String())
		return fmt.Errorf("identity metadata update failed, code: %d", resp.StatusCode())
	}
	return nil
}

// UpdateIdentityRole sets the role in the identity provider's user metadata.
func UpdateIdentityRole(externalID, role string) error {
	return patchIdentityMetadata(externalID, role)
}

// ClearIdentityRole removes the role from the identity provider's user metadata.
func ClearIdentityRole(externalID string) error {
	return patchIdentityMetadata(externalID, nil)
}
