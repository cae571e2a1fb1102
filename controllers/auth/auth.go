package authController

import (
	"errors"
	"strings"

	"skillhub/config"
	"skillhub/database"
	"skillhub/middleware"
	"skillhub/models"
	"skillhub/utils"
	authValidator "skillhub/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := strings.ToLower(strings.TrimSpace(reqData.Email))

	// Check if email already exists
	if err := db.Where("email = ?", email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An account with this email already exists!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to hash password")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     strings.TrimSpace(reqData.Name),
		Email:    email,
		Password: string(hashedPassword),
		Role:     reqData.Role,
	}
	// Role-scoped optional fields
	if reqData.Role == models.RoleStudent {
		newUser.RegistrationNumber = strings.TrimSpace(reqData.RegistrationNumber)
	}
	if reqData.Role == models.RoleFaculty {
		newUser.Department = strings.TrimSpace(reqData.Department)
	}

	if err := db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race with a concurrent registration; the unique index
			// on email is the real guard, the pre-check above only gives the
			// cleaner message.
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "An account with this email already exists!", nil)
		}
		logrus.WithFields(logrus.Fields{
			"email": email,
			"error": err.Error(),
		}).Error("Failed to save user")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	// Best effort: a webhook outage must never fail or roll back the
	// registration, only flip the emailSent flag.
	emailSent := true
	if err := utils.SendWelcomeWebhook(newUser); err != nil {
		emailSent = false
		logrus.WithFields(logrus.Fields{
			"email": newUser.Email,
			"error": err.Error(),
		}).Warn("Welcome webhook failed, registration continues")
	}

	token, err := middleware.GenerateJWT(newUser.ID, newUser.Name, newUser.Role)
	if err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to generate token")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"token":     token,
		"user":      newUser,
		"emailSent": emailSent,
	})
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(reqData.Email))).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role)
	if err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to generate token")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user":  user,
	})
}

func Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", user)
}
