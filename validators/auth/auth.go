package authValidator

import (
	"regexp"
	"strings"

	"skillhub/middleware"
	"skillhub/models"

	"github.com/gofiber/fiber/v2"
)

// RegisterRequest is the validated registration body.
type RegisterRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	Role               string `json:"role"`
	RegistrationNumber string `json:"registrationNumber"`
	Department         string `json:"department"`
}

// LoginRequest is the validated login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if len(strings.TrimSpace(reqData.Password)) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}

		if reqData.Role != models.RoleStudent && reqData.Role != models.RoleFaculty {
			errors["role"] = "Role must be either student or faculty!"
		}

		// Students must carry a registration number; faculty must not need one.
		if reqData.Role == models.RoleStudent && strings.TrimSpace(reqData.RegistrationNumber) == "" {
			errors["registrationNumber"] = "Registration number is required for students!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
