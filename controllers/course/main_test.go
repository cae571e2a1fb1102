package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"skillhub/config"
	"skillhub/database"
	"skillhub/middleware"
	"skillhub/models"
	authRoutes "skillhub/routers/authRoutes"
	courseRoutes "skillhub/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()
	config.AppConfig.WebhookURL = "" // no outbound calls from tests

	// _txlock=immediate serializes writer transactions so concurrent tests
	// queue instead of failing with SQLITE_BUSY.
	dsn := filepath.Join(t.TempDir(), "skillhub.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Enrollment{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	return app
}

func createUser(t *testing.T, name, email, role, regNo, dept string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:               name,
		Email:              email,
		Password:           string(hash),
		Role:               role,
		RegistrationNumber: regNo,
		Department:         dept,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func createCourse(t *testing.T, title, code, instructor string, maxStudents int) models.Course {
	t.Helper()

	course := models.Course{
		Title:       title,
		Code:        code,
		Category:    "Programming",
		Description: "A test course.",
		Instructor:  instructor,
		Duration:    "8 weeks",
		Level:       models.LevelBeginner,
		MaxStudents: maxStudents,
		StartDate:   time.Now(),
		EndDate:     time.Now().AddDate(0, 3, 0),
		IsActive:    true,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func courseURL(courseID uint) string {
	return "/courses/" + strconv.Itoa(int(courseID))
}

// coursesFrom unwraps the list envelope; a nil slice marshals as JSON null,
// so the type assertion is tolerant.
func coursesFrom(t *testing.T, body map[string]interface{}) []interface{} {
	t.Helper()

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	list, _ := data["courses"].([]interface{})
	return list
}

func liveEnrollmentCount(t *testing.T, courseID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, database.Database.Db.Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).Count(&count).Error)
	return count
}

func storedEnrolled(t *testing.T, courseID uint) int {
	t.Helper()

	var course models.Course
	require.NoError(t, database.Database.Db.First(&course, courseID).Error)
	return course.Enrolled
}
