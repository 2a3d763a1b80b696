package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartpos-api/internal/application/notification"
)

// NotificationHandler generación, listado y despacho de alertas de precio.
type NotificationHandler struct {
	generate *notification.GenerateUseCase
	dispatch *notification.DispatchUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(generate *notification.GenerateUseCase, dispatch *notification.DispatchUseCase) *NotificationHandler {
	return &NotificationHandler{generate: generate, dispatch: dispatch}
}

// Generate POST /api/notifications/generate/product/:productId
func (h *NotificationHandler) Generate(c *fiber.Ctx) error {
	out, err := h.generate.Generate(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	out, err := h.generate.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SendPending POST /api/notifications/send/pending
func (h *NotificationHandler) SendPending(c *fiber.Ctx) error {
	out, err := h.dispatch.DispatchPending(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
