package controllers

import (
	"errors"
	"strings"

	"skillhub/database"
	"skillhub/middleware"
	"skillhub/models"
	courseValidator "skillhub/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateCourse adds a catalog entry. Codes are normalized to uppercase before
// the duplicate check so "cs101" and "CS101" collide.
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	code := strings.ToUpper(strings.TrimSpace(reqData.Code))

	// Check if a course with this code already exists
	if err := db.Where("code = ?", code).First(&models.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course with this code already exists!", nil)
	}

	course := models.Course{
		Title:       strings.TrimSpace(reqData.Title),
		Code:        code,
		Category:    strings.TrimSpace(reqData.Category),
		Description: strings.TrimSpace(reqData.Description),
		Instructor:  strings.TrimSpace(reqData.Instructor),
		Duration:    strings.TrimSpace(reqData.Duration),
		Level:       reqData.Level,
		MaxStudents: reqData.MaxStudents,
		Enrolled:    0,
		StartDate:   reqData.StartDate,
		EndDate:     reqData.EndDate,
		Syllabus:    datatypes.NewJSONSlice(reqData.Syllabus),
		IsActive:    true,
	}

	if err := db.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course with this code already exists!", nil)
		}
		logrus.WithFields(logrus.Fields{
			"code":  code,
			"error": err.Error(),
		}).Error("Failed to create course")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse applies a partial update. A field is replaced only when the
// request supplied it; see UpdateCourseRequest for the presence convention.
func UpdateCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*reqData.Code))
		if code != course.Code {
			// Changing the code must not collide with another course
			if err := db.Where("code = ? AND id <> ?", code, course.ID).First(&models.Course{}).Error; err == nil {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course with this code already exists!", nil)
			}
		}
		course.Code = code
	}
	if reqData.Title != nil {
		course.Title = strings.TrimSpace(*reqData.Title)
	}
	if reqData.Category != nil {
		course.Category = strings.TrimSpace(*reqData.Category)
	}
	if reqData.Description != nil {
		course.Description = strings.TrimSpace(*reqData.Description)
	}
	if reqData.Instructor != nil {
		course.Instructor = strings.TrimSpace(*reqData.Instructor)
	}
	if reqData.Duration != nil {
		course.Duration = strings.TrimSpace(*reqData.Duration)
	}
	if reqData.Level != nil {
		course.Level = *reqData.Level
	}
	if reqData.MaxStudents != nil {
		course.MaxStudents = *reqData.MaxStudents
	}
	if reqData.StartDate != nil {
		course.StartDate = *reqData.StartDate
	}
	if reqData.EndDate != nil {
		course.EndDate = *reqData.EndDate
	}
	if reqData.Syllabus != nil {
		course.Syllabus = datatypes.NewJSONSlice(*reqData.Syllabus)
	}
	if reqData.IsActive != nil {
		course.IsActive = *reqData.IsActive
	}

	if err := db.Save(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course with this code already exists!", nil)
		}
		logrus.WithFields(logrus.Fields{
			"course_id": course.ID,
			"error":     err.Error(),
		}).Error("Failed to update course")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft-deletes by flipping isActive. Enrollment records and
// counters are untouched.
func DeleteCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsActive = false
	if err := db.Save(&course).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"course_id": course.ID,
			"error":     err.Error(),
		}).Error("Failed to delete course")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// RestoreCourse undoes a soft delete.
func RestoreCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsActive = true
	if err := db.Save(&course).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"course_id": course.ID,
			"error":     err.Error(),
		}).Error("Failed to restore course")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to restore course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course restored successfully!", course)
}

// PermanentDeleteCourse removes the course row entirely. Enrollments that
// reference it are intentionally left behind; the student listing drops them
// and the faculty listing serves their snapshots.
func PermanentDeleteCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := db.Delete(&models.Course{}, courseID).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"course_id": courseID,
			"error":     err.Error(),
		}).Error("Failed to permanently delete course")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course permanently deleted successfully!", nil)
}
