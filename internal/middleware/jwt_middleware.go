package middleware

import (
	"errors"
	"log"
	"strings"

	"stockpro/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// On success the subject user ID is stored in c.Locals("user_id").
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		userID, err := authService.VerifyToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			message := "Invalid token"
			if errors.Is(err, services.ErrExpiredToken) {
				message = "Token has expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": message,
			})
		}

		// Store the identity in Fiber context for subsequent handlers
		c.Locals("user_id", userID)

		// Continue to the next handler
		return c.Next()
	}
}

// UserID extracts the authenticated user ID set by AuthRequired.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}
