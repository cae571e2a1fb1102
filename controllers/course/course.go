package controllers

import (
	"net/url"
	"strings"

	"skillhub/database"
	"skillhub/middleware"
	"skillhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// applyLiveEnrollment replaces each course's stored counter with the live
// count from the enrollments table. The stored value can drift (see
// enrollment.go); listing endpoints always report the authoritative number.
func applyLiveEnrollment(db *gorm.DB, courses []models.Course) error {
	if len(courses) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(courses))
	for _, course := range courses {
		ids = append(ids, course.ID)
	}

	var rows []struct {
		CourseID uint
		Total    int64
	}
	if err := db.Model(&models.Enrollment{}).
		Select("course_id, COUNT(*) AS total").
		Where("course_id IN ?", ids).
		Group("course_id").
		Scan(&rows).Error; err != nil {
		return err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CourseID] = row.Total
	}
	for i := range courses {
		courses[i].Enrolled = int(counts[courses[i].ID])
	}
	return nil
}

// GetCourses lists active courses with live-recomputed enrollment counts.
func GetCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("is_active = ?", true).Find(&courses).Error; err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to fetch courses")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	if err := applyLiveEnrollment(db, courses); err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to count enrollments")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCourseDetails returns a single course, active or not.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// findCoursesByInstructor resolves courses for a faculty member whose name is
// stored as free text on the course. Exact match first, then a
// case-insensitive match on the full name, then on the surname alone, each
// tier only when the previous one found nothing. Instructor names are entered
// inconsistently ("Dr. Jane Smith" vs "Smith"), so the later tiers are best
// effort and can over-match.
func findCoursesByInstructor(db *gorm.DB, facultyName string) ([]models.Course, error) {
	var courses []models.Course
	if err := db.Where("instructor = ?", facultyName).Find(&courses).Error; err != nil {
		return nil, err
	}

	if len(courses) == 0 {
		pattern := "%" + escapeLike(strings.ToLower(facultyName)) + "%"
		if err := db.Where(`LOWER(instructor) LIKE ? ESCAPE '\'`, pattern).Find(&courses).Error; err != nil {
			return nil, err
		}
	}

	if len(courses) == 0 {
		parts := strings.Fields(facultyName)
		lastName := parts[len(parts)-1]
		pattern := "%" + escapeLike(strings.ToLower(lastName)) + "%"
		if err := db.Where(`LOWER(instructor) LIKE ? ESCAPE '\'`, pattern).Find(&courses).Error; err != nil {
			return nil, err
		}
	}

	return courses, nil
}

// escapeLike quotes LIKE metacharacters so a free-text name matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// GetMyCourses lists the authenticated faculty member's courses.
func GetMyCourses(c *fiber.Ctx) error {
	facultyName, _ := c.Locals("userName").(string)
	if strings.TrimSpace(facultyName) == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Faculty name not found in token!", nil)
	}

	db := database.Database.Db

	courses, err := findCoursesByInstructor(db, facultyName)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"faculty": facultyName,
			"error":   err.Error(),
		}).Error("Failed to fetch faculty courses")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	if err := applyLiveEnrollment(db, courses); err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to count enrollments")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCoursesByFaculty lists courses whose instructor field matches the given
// name exactly.
func GetCoursesByFaculty(c *fiber.Ctx) error {
	// Route params arrive percent-encoded; instructor names contain spaces.
	instructor, err := url.PathUnescape(c.Params("facultyId"))
	if err != nil {
		instructor = c.Params("facultyId")
	}

	var courses []models.Course
	if err := database.Database.Db.Where("instructor = ?", instructor).Find(&courses).Error; err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to fetch faculty courses")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}
