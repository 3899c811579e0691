package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"workmarket/internal/domain"
	applog "workmarket/internal/log"
	"workmarket/internal/validate"
)

const genericError = "Something went wrong. Please try again."

// statusOf maps a domain error kind onto an HTTP status. Anything that is not
// a domain error is a server fault.
func statusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput,
		domain.KindDuplicateListing,
		domain.KindDuplicateSchedule,
		domain.KindAlreadyEnrolled,
		domain.KindAlreadySold,
		domain.KindSoldOut:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// fail writes the {"error": ...} body for err and logs it under action.
// Internal errors are logged in full and answered with a generic message.
func fail(c *fiber.Ctx, action string, err error) error {
	status := statusOf(err)
	if status == fiber.StatusInternalServerError {
		applog.Error(c, action+".fail", err, nil)
		return c.Status(status).JSON(fiber.Map{"error": genericError})
	}
	applog.Info(c, action+".rejected", map[string]any{"reason": string(domain.KindOf(err)), "message": err.Error()})
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badBody(c *fiber.Ctx, action string, err error) error {
	applog.Security(c, "validation.fail", map[string]any{"action": action, "error": err.Error()})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
}

// ErrorHandler answers errors that escape handlers: unknown routes, oversized
// bodies, panics. Admin pages get HTML, everything else JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := genericError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		if status < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}
	if status >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}
	if isAdminPath(c) {
		c.Status(status)
		if rerr := render(c, "notfound", fiber.Map{"Title": "Error", "Message": msg}); rerr != nil {
			return c.Status(status).SendString(msg)
		}
		return nil
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// idParam returns the :id path parameter, or a NotFound error when it cannot
// be an id at all.
func idParam(c *fiber.Ctx) (string, error) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return "", domain.Errorf(domain.KindNotFound, "Not found")
	}
	return id, nil
}
