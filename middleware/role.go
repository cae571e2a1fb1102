package middleware

import (
	"errors"

	"skillhub/database"
	"skillhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RequireRole lets the request through only when the authenticated user's
// persisted role is in the given set. The role claim inside the token is
// deliberately not trusted here: tokens are valid for 30 days and a role
// change must take effect without re-login.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		if err := database.Database.Db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
			}
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Role check failed")
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied. Insufficient permissions!", nil)
	}
}
