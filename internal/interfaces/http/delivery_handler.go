package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lunitaval/ventas-api/internal/application/delivery"
	"github.com/lunitaval/ventas-api/internal/application/dto"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/pkg/dates"
)

// DeliveryHandler endpoints de seguimiento logístico: retiros por el local,
// envíos por correo y calendario de cadetería.
type DeliveryHandler struct {
	tracker *delivery.Tracker
	loc     *time.Location
}

func NewDeliveryHandler(tracker *delivery.Tracker, loc *time.Location) *DeliveryHandler {
	return &DeliveryHandler{tracker: tracker, loc: loc}
}

// RetiroStats GET /api/delivery/retiro/stats
func (h *DeliveryHandler) RetiroStats(c *fiber.Ctx) error {
	resp, err := h.tracker.RetiroStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// CorreoStats GET /api/delivery/correo/stats
func (h *DeliveryHandler) CorreoStats(c *fiber.Ctx) error {
	resp, err := h.tracker.CorreoStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// MarkDelivered POST /api/delivery/retiro/:id/delivered
func (h *DeliveryHandler) MarkDelivered(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.tracker.MarkDelivered(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "pedido marcado como entregado"})
}

// MarkShipped POST /api/delivery/correo/:id/shipped
func (h *DeliveryHandler) MarkShipped(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.tracker.MarkShipped(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "pedido marcado como enviado"})
}

// Shipments GET /api/delivery/shipments?from=&to= — calendario de cadetería.
// Sin parámetros devuelve la semana que empieza hoy.
func (h *DeliveryHandler) Shipments(c *fiber.Ctx) error {
	from := dates.Today(h.loc)
	to := from.AddDate(0, 0, 6)

	if raw := c.Query("from"); raw != "" {
		d, err := dates.Parse(raw, h.loc)
		if err != nil {
			return respondError(c, domain.Validationf("from inválida, formato AAAA-MM-DD"))
		}
		from = d
	}
	if raw := c.Query("to"); raw != "" {
		d, err := dates.Parse(raw, h.loc)
		if err != nil {
			return respondError(c, domain.Validationf("to inválida, formato AAAA-MM-DD"))
		}
		to = d
	}

	list, err := h.tracker.ShipmentCalendar(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"shipments": list})
}

// UpdateShipment PUT /api/delivery/shipments/:id — reprograma fecha o notas.
func (h *DeliveryHandler) UpdateShipment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ShipmentUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, domain.Validationf("body inválido"))
	}
	if err := h.tracker.UpdateShipment(c.Context(), id, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "envío actualizado"})
}
