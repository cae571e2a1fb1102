package controllers

import (
	"errors"
	"fmt"
	"time"

	"skillhub/database"
	"skillhub/middleware"
	"skillhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errCourseMissing   = errors.New("course not found")
	errAlreadyEnrolled = errors.New("already enrolled")
	errCourseFull      = errors.New("course is full")
)

// EnrollInCourse enrolls the authenticated student into a course.
//
// The uniqueness and capacity checks run inside one transaction with the
// course row locked, so concurrent enrolls can neither double-book a
// (student, course) pair nor push a course past maxStudents. The capacity
// gate reads the live enrollment count; the cached enrolled counter is only
// maintained for display and repaired by the reconciliation sweep.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var student models.User
	if err := db.First(&student, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var course models.Course
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errCourseMissing
			}
			return err
		}

		var existing models.Enrollment
		err := tx.Where("student_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
		if err == nil {
			return errAlreadyEnrolled
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var enrolled int64
		if err := tx.Model(&models.Enrollment{}).Where("course_id = ?", courseID).Count(&enrolled).Error; err != nil {
			return err
		}
		if enrolled >= int64(course.MaxStudents) {
			return errCourseFull
		}

		enrollment := models.Enrollment{
			StudentID:          userID,
			CourseID:           course.ID,
			EnrollmentDate:     time.Now(),
			StudentName:        student.Name,
			RegistrationNumber: student.RegistrationNumber,
			CourseTitle:        course.Title,
			CourseCode:         course.Code,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the race with a concurrent enroll for the same pair.
				return errAlreadyEnrolled
			}
			return err
		}

		return tx.Model(&models.Course{}).Where("id = ?", course.ID).
			Update("enrolled", gorm.Expr("enrolled + 1")).Error
	})

	switch {
	case errors.Is(txErr, errCourseMissing):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(txErr, errAlreadyEnrolled):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	case errors.Is(txErr, errCourseFull):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course is full!", nil)
	case txErr != nil:
		logrus.WithFields(logrus.Fields{
			"student_id": userID,
			"course_id":  courseID,
			"error":      txErr.Error(),
		}).Error("Enrollment failed")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, fmt.Sprintf("Successfully enrolled in %s!", course.Title), nil)
}

// UnenrollFromCourse removes the authenticated student's enrollment. The
// course row may already be permanently deleted; the unenroll still succeeds.
func UnenrollFromCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if err := removeEnrollment(db, enrollment.ID, uint(courseID)); err != nil {
		logrus.WithFields(logrus.Fields{
			"student_id": userID,
			"course_id":  courseID,
			"error":      err.Error(),
		}).Error("Unenrollment failed")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll from course!", nil)
	}

	message := "Successfully unenrolled from course!"
	var course models.Course
	if err := db.First(&course, courseID).Error; err == nil {
		message = fmt.Sprintf("Successfully unenrolled from %s!", course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, nil)
}

// removeEnrollment deletes the enrollment and decrements the course counter
// in one transaction. The decrement is floored at zero: the counter may
// already understate after a crash between insert and increment, and it must
// never go negative.
func removeEnrollment(db *gorm.DB, enrollmentID, courseID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Enrollment{}, enrollmentID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Course{}).Where("id = ? AND enrolled > 0", courseID).
			Update("enrolled", gorm.Expr("enrolled - 1")).Error
	})
}

// GetEnrolledCourses lists the authenticated student's courses, most recent
// enrollment first. Enrollments whose course was permanently deleted are
// silently dropped.
func GetEnrolledCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("student_id = ?", userID).Order("enrollment_date DESC").Find(&enrollments).Error; err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to fetch enrollments")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrolled courses!", nil)
	}

	courses := make([]fiber.Map, 0, len(enrollments))
	if len(enrollments) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled courses fetched successfully!", fiber.Map{
			"courses": courses,
		})
	}

	courseIDs := make([]uint, 0, len(enrollments))
	for _, enrollment := range enrollments {
		courseIDs = append(courseIDs, enrollment.CourseID)
	}

	var courseRows []models.Course
	if err := db.Where("id IN ?", courseIDs).Find(&courseRows).Error; err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to fetch courses")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrolled courses!", nil)
	}
	byID := make(map[uint]models.Course, len(courseRows))
	for _, course := range courseRows {
		byID[course.ID] = course
	}

	for _, enrollment := range enrollments {
		course, found := byID[enrollment.CourseID]
		if !found {
			// Course was permanently deleted; drop the orphaned entry.
			continue
		}
		courses = append(courses, fiber.Map{
			"id":          course.ID,
			"title":       course.Title,
			"code":        course.Code,
			"category":    course.Category,
			"description": course.Description,
			"instructor":  course.Instructor,
			"duration":    course.Duration,
			"level":       course.Level,
			"maxStudents": course.MaxStudents,
			"enrolled":    course.Enrolled,
			"startDate":   course.StartDate,
			"endDate":     course.EndDate,
			"syllabus":    course.Syllabus,
			"enrolledAt":  enrollment.EnrollmentDate,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetEnrolledStudents lists a course's students for faculty, most recent
// enrollment first. When a student's User record is gone, the snapshot taken
// at enrollment time is served instead, with "N/A" for fields the snapshot
// never captured.
func GetEnrolledStudents(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("course_id = ?", courseID).Order("enrollment_date DESC").Find(&enrollments).Error; err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to fetch enrollments")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrolled students!", nil)
	}

	students := make([]fiber.Map, 0, len(enrollments))
	if len(enrollments) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled students fetched successfully!", fiber.Map{
			"students": students,
		})
	}

	studentIDs := make([]uint, 0, len(enrollments))
	for _, enrollment := range enrollments {
		studentIDs = append(studentIDs, enrollment.StudentID)
	}

	var users []models.User
	if err := db.Where("id IN ?", studentIDs).Find(&users).Error; err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to fetch students")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrolled students!", nil)
	}
	byID := make(map[uint]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	for _, enrollment := range enrollments {
		if user, found := byID[enrollment.StudentID]; found {
			students = append(students, fiber.Map{
				"id":                 user.ID,
				"name":               user.Name,
				"email":              user.Email,
				"registrationNumber": user.RegistrationNumber,
				"department":         user.Department,
				"enrolledDate":       enrollment.EnrollmentDate,
			})
			continue
		}
		// User record is gone; the historical snapshot keeps the roster
		// viewable.
		students = append(students, fiber.Map{
			"id":                 enrollment.ID,
			"name":               enrollment.StudentName,
			"email":              "N/A",
			"registrationNumber": enrollment.RegistrationNumber,
			"department":         "N/A",
			"enrolledDate":       enrollment.EnrollmentDate,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled students fetched successfully!", fiber.Map{
		"students": students,
	})
}

// FacultyUnenrollStudent removes a student from a course on a faculty
// member's behalf and returns both display names for confirmation messaging.
func FacultyUnenrollStudent(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}
	studentID, err := c.ParamsInt("studentId")
	if err != nil || studentID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student id!", nil)
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var student models.User
	if err := db.First(&student, studentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	if err := removeEnrollment(db, enrollment.ID, uint(courseID)); err != nil {
		logrus.WithFields(logrus.Fields{
			"student_id": studentID,
			"course_id":  courseID,
			"error":      err.Error(),
		}).Error("Faculty unenrollment failed")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove student from course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true,
		fmt.Sprintf("Successfully removed %s from %s!", student.Name, course.Title), fiber.Map{
			"studentName": student.Name,
			"courseTitle": course.Title,
		})
}
