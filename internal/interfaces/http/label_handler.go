package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/lunitaval/ventas-api/internal/application/labels"
	"github.com/lunitaval/ventas-api/internal/domain"
)

// LabelHandler endpoints de etiquetas de envío en PDF.
type LabelHandler struct {
	uc *labels.UseCase
}

func NewLabelHandler(uc *labels.UseCase) *LabelHandler {
	return &LabelHandler{uc: uc}
}

// ForSale GET /api/labels/sale/:id
func (h *LabelHandler) ForSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, filename, err := h.uc.ForSale(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, pdf, filename)
}

// ForBatch POST /api/labels/batch — body {"sale_ids": [1, 2, 3]}
func (h *LabelHandler) ForBatch(c *fiber.Ctx) error {
	var req struct {
		SaleIDs []int64 `json:"sale_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, domain.Validationf("body inválido"))
	}
	pdf, filename, err := h.uc.ForBatch(c.Context(), req.SaleIDs)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, pdf, filename)
}

// ForShippingDate GET /api/labels/shipments/:date — etiquetas del día.
func (h *LabelHandler) ForShippingDate(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.ForShippingDate(c.Context(), c.Params("date"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, pdf, filename)
}

func sendPDF(c *fiber.Ctx, pdf []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
