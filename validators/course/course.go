package courseValidator

import (
	"strings"
	"time"

	"skillhub/middleware"
	"skillhub/models"

	"github.com/gofiber/fiber/v2"
)

// CreateCourseRequest is the validated course-creation body.
type CreateCourseRequest struct {
	Title       string                `json:"title"`
	Code        string                `json:"code"`
	Category    string                `json:"category"`
	Description string                `json:"description"`
	Instructor  string                `json:"instructor"`
	Duration    string                `json:"duration"`
	Level       string                `json:"level"`
	MaxStudents int                   `json:"maxStudents"`
	StartDate   time.Time             `json:"startDate"`
	EndDate     time.Time             `json:"endDate"`
	Syllabus    []models.SyllabusItem `json:"syllabus"`
}

// UpdateCourseRequest carries partial updates. Every field is a pointer: nil
// means "not supplied", so an explicit false or empty value can be told apart
// from an omitted one.
type UpdateCourseRequest struct {
	Title       *string                `json:"title"`
	Code        *string                `json:"code"`
	Category    *string                `json:"category"`
	Description *string                `json:"description"`
	Instructor  *string                `json:"instructor"`
	Duration    *string                `json:"duration"`
	Level       *string                `json:"level"`
	MaxStudents *int                   `json:"maxStudents"`
	StartDate   *time.Time             `json:"startDate"`
	EndDate     *time.Time             `json:"endDate"`
	Syllabus    *[]models.SyllabusItem `json:"syllabus"`
	IsActive    *bool                  `json:"isActive"`
}

func isValidLevel(level string) bool {
	return level == models.LevelBeginner || level == models.LevelIntermediate || level == models.LevelAdvanced
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if strings.TrimSpace(reqData.Code) == "" {
			errors["code"] = "Code is required!"
		}
		if strings.TrimSpace(reqData.Category) == "" {
			errors["category"] = "Category is required!"
		}
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}
		if strings.TrimSpace(reqData.Instructor) == "" {
			errors["instructor"] = "Instructor is required!"
		}
		if strings.TrimSpace(reqData.Duration) == "" {
			errors["duration"] = "Duration is required!"
		}
		if !isValidLevel(reqData.Level) {
			errors["level"] = "Level must be Beginner, Intermediate or Advanced!"
		}
		if reqData.MaxStudents < 1 {
			errors["maxStudents"] = "Max students must be at least 1!"
		}
		if reqData.StartDate.IsZero() {
			errors["startDate"] = "Start date is required!"
		}
		if reqData.EndDate.IsZero() {
			errors["endDate"] = "End date is required!"
		} else if !reqData.StartDate.IsZero() && reqData.EndDate.Before(reqData.StartDate) {
			errors["endDate"] = "End date must be after start date!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware. Only supplied fields are validated.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title must not be empty!"
		}
		if reqData.Code != nil && strings.TrimSpace(*reqData.Code) == "" {
			errors["code"] = "Code must not be empty!"
		}
		if reqData.Level != nil && !isValidLevel(*reqData.Level) {
			errors["level"] = "Level must be Beginner, Intermediate or Advanced!"
		}
		if reqData.MaxStudents != nil && *reqData.MaxStudents < 1 {
			errors["maxStudents"] = "Max students must be at least 1!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}
