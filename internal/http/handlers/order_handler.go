package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "workmarket/internal/log"
	"workmarket/internal/services"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// POST /purchase
func (h *OrderHandler) Purchase(c *fiber.Ctx) error {
	var in services.PurchaseInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "purchase", err)
	}
	o, err := h.Orders.Purchase(c.UserContext(), in)
	if err != nil {
		return fail(c, "purchase", err)
	}
	applog.Audit(c, "purchase", map[string]any{"order_id": o.ID, "listing_id": o.ListingID, "buyer_id": o.BuyerID})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GET /orders?buyerId=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.Orders.List(c.UserContext(), c.Query("buyerId"))
	if err != nil {
		return fail(c, "order.list", err)
	}
	return c.JSON(out)
}
