package utils

import (
	"encoding/json"
	"fmt"
	"lms/config"
	"log"
	"mime/multipart"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// MediaUploadResult is the media store's answer to an upload: the hosted URL
// and the opaque asset id, returned to callers verbatim.
type MediaUploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// UploadToMediaStore forwards the file to the external media store as an
// "auto" resource type upload. The store sniffs whether it got a video or an
// image and transcodes accordingly.
func UploadToMediaStore(file *multipart.FileHeader) (*MediaUploadResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	publicID := uuid.New().String()

	client := resty.New()
	resp, err := client.R().
		SetFileReader("file", file.Filename, src).
		SetFormData(map[string]string{
			"api_key":       config.AppConfig.MediaStoreKey,
			"bucket":        config.AppConfig.MediaStoreBucket,
			"public_id":     publicID,
			"resource_type": "auto",
		}).
		Post(config.AppConfig.MediaStoreURL + "/upload")
	if err != nil {
		log.Printf("Media store upload failed: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Media store upload rejected: %s", resp.String())
		return nil, fmt.Errorf("media store upload failed, code: %d", resp.StatusCode())
	}

	var result struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("invalid media store response: %w", err)
	}
	if result.PublicID == "" {
		result.PublicID = publicID
	}

	return &MediaUploadResult{URL: result.SecureURL, PublicID: result.PublicID}, nil
}
