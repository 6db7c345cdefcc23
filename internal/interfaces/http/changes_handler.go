package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lunitaval/ventas-api/internal/application/delivery"
	"github.com/lunitaval/ventas-api/internal/application/dto"
)

// ChangesHandler endpoints del circuito de cambios de mercadería.
type ChangesHandler struct {
	tracker *delivery.Tracker
}

func NewChangesHandler(tracker *delivery.Tracker) *ChangesHandler {
	return &ChangesHandler{tracker: tracker}
}

// Stats GET /api/changes/stats
func (h *ChangesHandler) Stats(c *fiber.Ctx) error {
	resp, err := h.tracker.ChangesStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// MarkReceived POST /api/changes/:id/received
func (h *ChangesHandler) MarkReceived(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.tracker.MarkChangeReceived(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cambio marcado como recibido"})
}
