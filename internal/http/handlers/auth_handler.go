package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "workmarket/internal/log"
	"workmarket/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) Users(c *fiber.Ctx) error {
	out, err := h.Auth.Users(c.UserContext())
	if err != nil {
		return fail(c, "auth.users", err)
	}
	return c.JSON(out)
}

// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "auth.login", err)
	}
	res, err := h.Auth.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		if statusOf(err) == fiber.StatusUnauthorized {
			applog.Security(c, "auth.login.fail", map[string]any{"email": in.Email, "reason": err.Error()})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		return fail(c, "auth.login", err)
	}
	c.Locals(userIDLocal, res.User.ID)
	applog.Audit(c, "auth.login.success", map[string]any{"email": res.User.Email})
	return c.JSON(res)
}

// GET /auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := h.Auth.Me(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return fail(c, "auth.me", err)
	}
	return c.JSON(fiber.Map{
		"id":        claims.UserID,
		"email":     claims.Email,
		"name":      claims.Name,
		"role":      claims.Role,
		"expiresAt": claims.ExpiresAt.Time,
	})
}
