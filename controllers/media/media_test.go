package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/config"
	"lms/middleware"
	mediaRoutes "lms/routers/mediaRoutes"
)

func setupApp(t *testing.T, storeHandler http.HandlerFunc) *fiber.App {
	t.Helper()

	store := httptest.NewServer(storeHandler)
	t.Cleanup(store.Close)

	config.AppConfig = &config.Config{
		JWTKey:           "test-secret",
		MediaStoreURL:    store.URL,
		MediaStoreKey:    "test-key",
		MediaStoreBucket: "test-bucket",
	}

	app := fiber.New()
	mediaRoutes.SetupMediaRoutes(app)
	return app
}

func uploadRequest(t *testing.T, token string, withFile bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if withFile {
		part, err := w.CreateFormFile("file", "lesson.mp4")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake video bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/media/upload-video", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestUploadVideo(t *testing.T) {
	app := setupApp(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "auto", r.FormValue("resource_type"))
		assert.Equal(t, "test-key", r.FormValue("api_key"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"secure_url":"https://media.example.com/lesson.mp4","public_id":"asset-123"}`)
	})

	token, err := middleware.GenerateSessionToken("usr_1", "Test User", "moderator", "t@example.com")
	require.NoError(t, err)

	resp, err := app.Test(uploadRequest(t, token, true), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			URL      string `json:"url"`
			PublicID string `json:"public_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.Equal(t, "https://media.example.com/lesson.mp4", env.Data.URL)
	assert.Equal(t, "asset-123", env.Data.PublicID)
}

func TestUploadVideoRequiresAuth(t *testing.T) {
	app := setupApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("media store must not be called without a session")
	})

	resp, err := app.Test(uploadRequest(t, "", true), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUploadVideoMissingFile(t *testing.T) {
	app := setupApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("media store must not be called without a file")
	})

	token, err := middleware.GenerateSessionToken("usr_1", "Test User", "moderator", "t@example.com")
	require.NoError(t, err)

	resp, err := app.Test(uploadRequest(t, token, false), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadVideoStoreFailure(t *testing.T) {
	app := setupApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusInternalServerError)
	})

	token, err := middleware.GenerateSessionToken("usr_1", "Test User", "moderator", "t@example.com")
	require.NoError(t, err)

	resp, err := app.Test(uploadRequest(t, token, true), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
