package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"komodohub/config"
	"komodohub/database"
	"komodohub/middleware"
	"komodohub/models"
	courseRoutes "komodohub/routers/courseRoutes"
)

// setupTest opens a fresh in-memory database, runs migrations and installs
// it as the global instance the controllers read from.
func setupTest(t *testing.T) *gorm.DB {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func newTestApp() *fiber.App {
	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupTeacherRoutes(app)
	return app
}

func createUser(t *testing.T, db *gorm.DB, role, username string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(config.AppConfig.DefaultStudentPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username: username,
		Password: string(hash),
		Role:     role,
		FullName: "Test " + role,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Username)
	require.NoError(t, err)

	return user, token
}

func createCourse(t *testing.T, db *gorm.DB, teacherID uint, title string) models.Course {
	t.Helper()

	course := models.Course{TeacherID: teacherID, Title: title, Description: "About " + title}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}

	return resp, parsed
}
