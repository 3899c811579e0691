package handlers

import (
	"github.com/gofiber/fiber/v2"

	"workmarket/internal/services"
)

type MessageHandler struct {
	Messages *services.MessageService
}

// GET /messages?user=
func (h *MessageHandler) List(c *fiber.Ctx) error {
	out, err := h.Messages.List(c.UserContext(), c.Query("user"))
	if err != nil {
		return fail(c, "message.list", err)
	}
	return c.JSON(out)
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var in services.SendMessageInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, "message.send", err)
	}
	m, err := h.Messages.Send(c.UserContext(), in)
	if err != nil {
		return fail(c, "message.send", err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}
