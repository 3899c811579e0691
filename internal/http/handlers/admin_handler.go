package handlers

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"workmarket/internal/domain"
	applog "workmarket/internal/log"
	"workmarket/internal/services"
)

// AdminHandler serves the server-rendered moderation queue.
type AdminHandler struct {
	Moderation *services.ModerationService
	Listings   *services.ListingService
}

type reportRow struct {
	Report domain.Report
	Title  string
}

// GET /admin/reports?status=all
func (h *AdminHandler) ReportsPage(c *fiber.Ctx) error {
	status := domain.ReportPending
	if c.Query("status") == "all" {
		status = ""
	}
	reports, err := h.Moderation.List(c.UserContext(), status)
	if err != nil {
		applog.Error(c, "admin.reports.list.fail", err, nil)
		c.Status(fiber.StatusInternalServerError)
		return render(c, "notfound", fiber.Map{"Title": "Error", "Message": "Could not load reports"})
	}
	listings, err := h.Listings.List(c.UserContext(), services.ListingFilter{})
	if err != nil {
		applog.Error(c, "admin.reports.list.fail", err, nil)
		c.Status(fiber.StatusInternalServerError)
		return render(c, "notfound", fiber.Map{"Title": "Error", "Message": "Could not load reports"})
	}
	titles := make(map[string]string, len(listings))
	for _, l := range listings {
		titles[l.ID] = l.Title
	}
	rows := make([]reportRow, 0, len(reports))
	for _, r := range reports {
		title, ok := titles[r.ListingID]
		if !ok {
			title = "(listing deleted)"
		}
		rows = append(rows, reportRow{Report: r, Title: title})
	}
	return render(c, "admin_reports", fiber.Map{
		"Title":   "Reports",
		"Reports": rows,
		"Flash":   c.Query("done"),
	})
}

// POST /admin/reports/:id/approve
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	return h.resolve(c, "admin.reports.approve", h.Moderation.Approve, "Report approved")
}

// POST /admin/reports/:id/remove
func (h *AdminHandler) Remove(c *fiber.Ctx) error {
	return h.resolve(c, "admin.reports.remove", h.Moderation.Remove, "Listing removed")
}

func (h *AdminHandler) resolve(c *fiber.Ctx, action string, fn func(context.Context, string) (domain.Report, error), done string) error {
	id := c.Params("id")
	r, err := fn(c.UserContext(), id)
	if err != nil {
		status := statusOf(err)
		msg := err.Error()
		if status == fiber.StatusInternalServerError {
			applog.Error(c, action+".fail", err, map[string]any{"report_id": id})
			msg = genericError
		} else {
			applog.Security(c, action+".rejected", map[string]any{"report_id": id, "reason": msg})
		}
		c.Status(status)
		return render(c, "notfound", fiber.Map{"Title": "Error", "Message": msg})
	}
	applog.Audit(c, action, map[string]any{"report_id": r.ID, "listing_id": r.ListingID})
	return c.Redirect("/admin/reports?done=" + url.QueryEscape(done))
}
