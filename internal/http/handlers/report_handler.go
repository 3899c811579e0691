package handlers

import (
	"github.com/gofiber/fiber/v2"

	"workmarket/internal/domain"
	applog "workmarket/internal/log"
	"workmarket/internal/services"
)

type ReportHandler struct {
	Moderation *services.ModerationService
}

// GET /reports?status=
func (h *ReportHandler) List(c *fiber.Ctx) error {
	out, err := h.Moderation.List(c.UserContext(), domain.ReportStatus(c.Query("status")))
	if err != nil {
		return fail(c, "report.list", err)
	}
	return c.JSON(out)
}

// POST /reports
func (h *ReportHandler) Flag(c *fiber.Ctx) error {
	var in services.FlagInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "report.flag", err)
	}
	r, err := h.Moderation.Flag(c.UserContext(), in)
	if err != nil {
		return fail(c, "report.flag", err)
	}
	applog.Audit(c, "report.flag", map[string]any{"report_id": r.ID, "listing_id": r.ListingID})
	return c.Status(fiber.StatusCreated).JSON(r)
}

// POST /reports/:id/approve
func (h *ReportHandler) Approve(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return fail(c, "report.approve", err)
	}
	r, err := h.Moderation.Approve(c.UserContext(), id)
	if err != nil {
		return fail(c, "report.approve", err)
	}
	applog.Audit(c, "report.approve", map[string]any{"report_id": r.ID, "listing_id": r.ListingID})
	return c.JSON(r)
}

// POST /reports/:id/remove
func (h *ReportHandler) Remove(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return fail(c, "report.remove", err)
	}
	r, err := h.Moderation.Remove(c.UserContext(), id)
	if err != nil {
		return fail(c, "report.remove", err)
	}
	applog.Audit(c, "report.remove", map[string]any{"report_id": r.ID, "listing_id": r.ListingID})
	return c.JSON(r)
}
