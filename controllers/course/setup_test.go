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
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseRoutes "lms/routers/courseRoutes"
)

type envelope struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	return app
}

func seedUser(t *testing.T, externalID, role string) models.User {
	t.Helper()
	user := models.User{
		ExternalID: externalID,
		Name:       "Test User",
		Email:      externalID + "@example.com",
		Role:       role,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func getToken(t *testing.T, externalID, role string) string {
	t.Helper()
	token, err := middleware.GenerateSessionToken(externalID, "Test User", role, externalID+"@example.com")
	require.NoError(t, err)
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) *http.Request {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func buildForm(t *testing.T, fields map[string]string) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return buf.Bytes(), w.FormDataContentType()
}

// courseLectures reads a course's lecture sequence straight from the link
// table, in position order.
func courseLectures(t *testing.T, courseID uint) []models.Lecture {
	t.Helper()
	var lectures []models.Lecture
	require.NoError(t, database.Database.Db.
		Joins("JOIN course_lectures ON course_lectures.lecture_id = lectures.id").
		Where("course_lectures.course_id = ? AND course_lectures.deleted_at IS NULL", courseID).
		Order("course_lectures.position asc").
		Find(&lectures).Error)
	return lectures
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}
