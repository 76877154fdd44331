package middleware

import (
	"fmt"
	"strings"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT issues a bearer token carrying the externally issued user id.
// Production tokens come from the identity provider; this mirrors their
// claim shape for local and test use.
func GenerateJWT(userID string, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// Protect checks for a valid bearer token and stores the authenticated user
// id in the request locals.
func Protect(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
	}

	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["sub"] == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
	}

	c.Locals("userId", userID)
	return c.Next()
}

// ProtectEducator allows only users whose mirrored account carries the
// educator role. Runs after Protect.
func ProtectEducator(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized Access", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, "id = ?", userID).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != models.RoleEducator && user.Role != models.RoleAdmin {
		return JsonResponse(c, fiber.StatusForbidden, false, "Educator Access Required", nil)
	}

	return c.Next()
}

// ProtectAdmin allows platform admins only: either the admin role on the
// mirrored account or an id from the configured admin list. Runs after
// Protect.
func ProtectAdmin(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(string)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized Access", nil)
	}

	if config.AppConfig.IsAdmin(userID) {
		return c.Next()
	}

	var user models.User
	if err := database.Database.Db.First(&user, "id = ?", userID).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != models.RoleAdmin {
		return JsonResponse(c, fiber.StatusForbidden, false, "Admin Access Required", nil)
	}

	return c.Next()
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
