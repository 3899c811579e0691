package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const csrfLocal = "csrf"

func isAdminPath(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/admin")
}

// render draws an admin page inside the shared layout with the CSRF token the
// forms need.
func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if tok, ok := c.Locals(csrfLocal).(string); ok && tok != "" {
		data["CSRFToken"] = tok
	}
	if uid, ok := c.Locals(userIDLocal).(string); ok {
		data["UserID"] = uid
	}
	return c.Render(tmpl, data, "layout")
}
