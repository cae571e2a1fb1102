package main

import (
	"log"
	"time"

	"skillhub/config"
	"skillhub/database"
	"skillhub/models"

	"github.com/jinzhu/now"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Seeds a demo student and faculty account plus a sample course so a fresh
// checkout has something to log in with.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	// Clear existing data
	if err := db.Where("1 = 1").Delete(&models.Enrollment{}).Error; err != nil {
		log.Fatalf("Failed to clear enrollments: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&models.Course{}).Error; err != nil {
		log.Fatalf("Failed to clear courses: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		log.Fatalf("Failed to clear users: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := []models.User{
		{
			Name:               "John Student",
			Email:              "student@example.com",
			Password:           string(hashedPassword),
			Role:               models.RoleStudent,
			RegistrationNumber: "REG001",
		},
		{
			Name:       "Dr. Smith",
			Email:      "faculty@example.com",
			Password:   string(hashedPassword),
			Role:       models.RoleFaculty,
			Department: "Computer Science",
		},
	}
	if err := db.Create(&users).Error; err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	// Course opens at the start of next week and runs for three months
	startDate := now.With(time.Now().AddDate(0, 0, 7)).BeginningOfWeek()
	course := models.Course{
		Title:       "Introduction to Go",
		Code:        "GO101",
		Category:    "Programming",
		Description: "Foundations of the Go programming language.",
		Instructor:  "Dr. Smith",
		Duration:    "12 weeks",
		Level:       models.LevelBeginner,
		MaxStudents: 30,
		StartDate:   startDate,
		EndDate:     startDate.AddDate(0, 3, 0),
		Syllabus: datatypes.NewJSONSlice([]models.SyllabusItem{
			{Module: "Basics", Topic: "Syntax and tooling"},
			{Module: "Concurrency", Topic: "Goroutines and channels"},
		}),
		IsActive: true,
	}
	if err := db.Create(&course).Error; err != nil {
		log.Fatalf("Failed to seed course: %v", err)
	}

	log.Println("Data imported successfully")
}
