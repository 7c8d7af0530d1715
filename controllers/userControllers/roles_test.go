package controllers_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	userRoutes "lms/routers/userRoutes"
)

func setupApp(t *testing.T) (*fiber.App, *[]string) {
	t.Helper()

	var calls []string
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{}`)
	}))
	t.Cleanup(stub.Close)

	config.AppConfig = &config.Config{
		JWTKey:         "test-secret",
		IdentityApiURL: stub.URL,
		IdentityApiKey: "test-key",
	}

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
	userRoutes.SetupUserRoutes(app)
	return app, &calls
}

func roleRequest(t *testing.T, method, role, tokenRole string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	if role != "" {
		body.WriteString(`{"role":"` + role + `"}`)
	}
	req := httptest.NewRequest(method, "/admin/users/usr_1/role", &body)
	req.Header.Set("Content-Type", "application/json")
	if tokenRole != "" {
		token, err := middleware.GenerateSessionToken("usr_root", "Root", tokenRole, "root@example.com")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestSetUserRole(t *testing.T) {
	app, calls := setupApp(t)

	user := models.User{ExternalID: "usr_1", Role: models.RoleModerator}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	resp, err := app.Test(roleRequest(t, http.MethodPut, "admin", models.RoleAdmin), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, *calls, 1)
	assert.Equal(t, "PATCH /users/usr_1/metadata", (*calls)[0])

	var got models.User
	require.NoError(t, database.Database.Db.Where("external_id = ?", "usr_1").First(&got).Error)
	assert.Equal(t, models.RoleAdmin, got.Role)
}

func TestSetUserRoleRejectsUnknownRole(t *testing.T) {
	app, calls := setupApp(t)

	resp, err := app.Test(roleRequest(t, http.MethodPut, "superuser", models.RoleAdmin), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, *calls)
}

func TestSetUserRoleAdminOnly(t *testing.T) {
	app, calls := setupApp(t)

	// moderators manage courses, not roles
	resp, err := app.Test(roleRequest(t, http.MethodPut, "admin", models.RoleModerator), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(roleRequest(t, http.MethodPut, "admin", ""), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.Empty(t, *calls)
}

func TestRemoveUserRole(t *testing.T) {
	app, calls := setupApp(t)

	user := models.User{ExternalID: "usr_1", Role: models.RoleAdmin}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	resp, err := app.Test(roleRequest(t, http.MethodDelete, "", models.RoleAdmin), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, *calls, 1)

	var got models.User
	require.NoError(t, database.Database.Db.Where("external_id = ?", "usr_1").First(&got).Error)
	assert.Equal(t, models.RoleStudent, got.Role)
}
