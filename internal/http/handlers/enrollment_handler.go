package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "workmarket/internal/log"
	"workmarket/internal/services"
)

type EnrollmentHandler struct {
	Enrollments *services.EnrollmentService
}

// POST /enroll
func (h *EnrollmentHandler) Enroll(c *fiber.Ctx) error {
	var in services.EnrollInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "enroll", err)
	}
	booked, err := h.Enrollments.Enroll(c.UserContext(), in)
	if err != nil {
		return fail(c, "enroll", err)
	}
	applog.Audit(c, "enroll", map[string]any{"workshop_id": in.WorkshopID, "enrolled_user": in.UserID, "booked_seats": booked})
	return c.JSON(fiber.Map{"ok": true, "bookedSeats": booked})
}

// GET /enrollments?userId=&workshopId=
func (h *EnrollmentHandler) List(c *fiber.Ctx) error {
	out, err := h.Enrollments.List(c.UserContext(), services.EnrollmentFilter{
		UserID:     c.Query("userId"),
		WorkshopID: c.Query("workshopId"),
	})
	if err != nil {
		return fail(c, "enrollment.list", err)
	}
	return c.JSON(out)
}
