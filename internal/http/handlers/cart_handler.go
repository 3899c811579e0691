package handlers

import (
	"github.com/gofiber/fiber/v2"

	"workmarket/internal/services"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) List(c *fiber.Ctx) error {
	out, err := h.Cart.List(c.UserContext())
	if err != nil {
		return fail(c, "cart.list", err)
	}
	return c.JSON(out)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in services.AddToCartInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "cart.add", err)
	}
	e, err := h.Cart.Add(c.UserContext(), in)
	if err != nil {
		return fail(c, "cart.add", err)
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return fail(c, "cart.remove", err)
	}
	removed, err := h.Cart.Remove(c.UserContext(), id)
	if err != nil {
		return fail(c, "cart.remove", err)
	}
	return c.JSON(fiber.Map{"ok": true, "removed": removed})
}

func (h *CartHandler) Summary(c *fiber.Ctx) error {
	sum, err := h.Cart.Summary(c.UserContext())
	if err != nil {
		return fail(c, "cart.summary", err)
	}
	return c.JSON(sum)
}
