package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "workmarket/internal/log"
	"workmarket/internal/services"
)

type ListingHandler struct {
	Listings        *services.ListingService
	AvailabilitySvc *services.AvailabilityService
}

// GET /listings?type=&category=&q=
func (h *ListingHandler) List(c *fiber.Ctx) error {
	out, err := h.Listings.List(c.UserContext(), services.ListingFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		return fail(c, "listing.list", err)
	}
	return c.JSON(out)
}

// GET /listings/:id
func (h *ListingHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return fail(c, "listing.get", err)
	}
	l, err := h.Listings.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, "listing.get", err)
	}
	return c.JSON(l)
}

// GET /listings/:id/availability
func (h *ListingHandler) Availability(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return fail(c, "listing.availability", err)
	}
	a, err := h.AvailabilitySvc.Check(c.UserContext(), id)
	if err != nil {
		return fail(c, "listing.availability", err)
	}
	return c.JSON(a)
}

// POST /listings
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var in services.CreateListingInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "listing.create", err)
	}
	l, err := h.Listings.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, "listing.create", err)
	}
	applog.Audit(c, "listing.create", map[string]any{"listing_id": l.ID, "type": string(l.Type), "owner_id": l.Owner()})
	return c.Status(fiber.StatusCreated).JSON(l)
}

// DELETE /listings/:id
func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return fail(c, "listing.delete", err)
	}
	removed, err := h.Listings.Delete(c.UserContext(), id)
	if err != nil {
		return fail(c, "listing.delete", err)
	}
	applog.Audit(c, "listing.delete", map[string]any{"listing_id": removed.ID})
	return c.JSON(fiber.Map{"ok": true, "removed": removed})
}
