package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"skillhub/config"
	"skillhub/database"
	"skillhub/models"
	"skillhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDb(t *testing.T) *gorm.DB {
	t.Helper()

	config.LoadConfig()

	dsn := filepath.Join(t.TempDir(), "skillhub.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Enrollment{}))
	database.Database = database.DbInstance{Db: db}
	return db
}

func seedCourse(t *testing.T, db *gorm.DB, code string, enrolled, actual int) models.Course {
	t.Helper()

	course := models.Course{
		Title:       "Course " + code,
		Code:        code,
		MaxStudents: 50,
		Enrolled:    enrolled,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&course).Error)

	for i := 0; i < actual; i++ {
		require.NoError(t, db.Create(&models.Enrollment{
			StudentID:      uint(1000*int(course.ID) + i), // synthetic, no User rows needed
			CourseID:       course.ID,
			EnrollmentDate: time.Now(),
			CourseTitle:    course.Title,
			CourseCode:     course.Code,
		}).Error)
	}
	return course
}

func TestReconcileEnrollmentCounts(t *testing.T) {
	db := setupDb(t)

	overstated := seedCourse(t, db, "CS101", 7, 2)
	understated := seedCourse(t, db, "CS202", 0, 3)
	accurate := seedCourse(t, db, "CS303", 1, 1)

	utils.ReconcileEnrollmentCounts()

	// fresh destination struct per lookup; a populated primary key would be
	// added to the next query's conditions
	var first, second, third models.Course
	require.NoError(t, db.First(&first, overstated.ID).Error)
	assert.Equal(t, 2, first.Enrolled)

	require.NoError(t, db.First(&second, understated.ID).Error)
	assert.Equal(t, 3, second.Enrolled)

	require.NoError(t, db.First(&third, accurate.ID).Error)
	assert.Equal(t, 1, third.Enrolled)
}

func TestSendWelcomeWebhook(t *testing.T) {
	setupDb(t)
	user := models.User{
		Name:               "John Student",
		Email:              "student@example.com",
		Role:               models.RoleStudent,
		RegistrationNumber: "REG001",
	}

	t.Run("disabled when unconfigured", func(t *testing.T) {
		config.AppConfig.WebhookURL = ""
		assert.NoError(t, utils.SendWelcomeWebhook(user))
	})

	t.Run("delivers payload", func(t *testing.T) {
		var received utils.WelcomeWebhookPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()
		config.AppConfig.WebhookURL = server.URL

		require.NoError(t, utils.SendWelcomeWebhook(user))
		assert.Equal(t, "John Student", received.Name)
		assert.Equal(t, "REG001", received.RegistrationNumber)
		assert.Equal(t, "SkillHub", received.Platform)
		assert.NotEmpty(t, received.RegistrationDate)
	})

	t.Run("server error is reported", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()
		config.AppConfig.WebhookURL = server.URL

		assert.Error(t, utils.SendWelcomeWebhook(user))
	})

	t.Run("unreachable endpoint is reported", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		config.AppConfig.WebhookURL = server.URL
		server.Close()

		assert.Error(t, utils.SendWelcomeWebhook(user))
	})
}
