package middleware

import (
	"fmt"
	"strings"
	"time"

	"skillhub/config"
	"skillhub/database"
	"skillhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT mints a signed identity token for the user. Tokens live for 30
// days; role changes after issuance take effect because the role middleware
// re-checks storage on every protected request.
func GenerateJWT(userID uint, name, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"name": name,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(30 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// JWTMiddleware is a middleware to check for a valid JWT token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Authorization token required!", nil)
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format!", nil)
	}

	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token!", nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload!", nil)
	}

	idClaim, ok := claims["id"].(float64) // JWT numbers decode as float64
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload!", nil)
	}
	userID := uint(idClaim)

	name, _ := claims["name"].(string)
	if name == "" {
		// Tokens minted before the name claim was added only carry the id.
		// Resolve the name from storage; a failed lookup is not fatal as long
		// as the id itself is valid.
		var user models.User
		if err := database.Database.Db.Select("name").First(&user, userID).Error; err == nil {
			name = user.Name
		}
	}
	role, _ := claims["role"].(string)

	c.Locals("userId", userID)
	c.Locals("userName", name)
	c.Locals("userRole", role)

	return c.Next()
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
}
