package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"workmarket/internal/auth"
	applog "workmarket/internal/log"
)

const (
	userIDLocal = "userID"
	claimsLocal = "claims"
)

// Identify attaches the caller's identity when a valid bearer token is sent.
// Requests without one are let through unchanged; the marketplace has no
// access control, the identity only enriches logs.
func Identify(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(h, "Bearer ") {
			return c.Next()
		}
		claims, err := tokens.Verify(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			applog.Security(c, "auth.token.invalid", map[string]any{"error": err.Error()})
			return c.Next()
		}
		c.Locals(userIDLocal, claims.UserID)
		c.Locals(claimsLocal, claims)
		return c.Next()
	}
}
