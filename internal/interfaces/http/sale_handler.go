package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lunitaval/ventas-api/internal/application/dto"
	"github.com/lunitaval/ventas-api/internal/application/sales"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
	"github.com/lunitaval/ventas-api/pkg/dates"
)

// SaleHandler endpoints CRUD, cobro y exploración de ventas.
type SaleHandler struct {
	uc  *sales.UseCase
	loc *time.Location
}

func NewSaleHandler(uc *sales.UseCase, loc *time.Location) *SaleHandler {
	return &SaleHandler{uc: uc, loc: loc}
}

// Create POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.SaleInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, domain.Validationf("body inválido"))
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get GET /api/sales/:id
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	resp, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Update PUT /api/sales/:id
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SaleInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, domain.Validationf("body inválido"))
	}
	resp, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete DELETE /api/sales/:id
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "venta eliminada"})
}

// MarkPaid POST /api/sales/:id/pay
func (h *SaleHandler) MarkPaid(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.MarkPaid(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "venta marcada como pagada"})
}

// List GET /api/sales — exploración con filtros combinables por query string.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	resp, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Last GET /api/sales/last — últimas ventas creadas.
func (h *SaleHandler) Last(c *fiber.Ctx) error {
	list, err := h.uc.Last(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"sales": list})
}

// parseFilter arma el SaleFilter desde la query string. Los booleanos vienen
// como "true"/"false"; ausentes significa sin filtro.
func (h *SaleHandler) parseFilter(c *fiber.Ctx) (repository.SaleFilter, error) {
	f := repository.SaleFilter{
		SalesChannel:  c.Query("sales_channel"),
		PaymentMethod: c.Query("payment_method"),
		CustomerName:  c.Query("customer_name"),
		Limit:         c.QueryInt("limit"),
		Offset:        c.QueryInt("offset"),
	}
	var err error
	if f.Paid, err = parseBoolQuery(c, "paid"); err != nil {
		return f, err
	}
	if f.HasShipping, err = parseBoolQuery(c, "has_shipping"); err != nil {
		return f, err
	}
	if raw := c.Query("date_from"); raw != "" {
		from, err := dates.Parse(raw, h.loc)
		if err != nil {
			return f, domain.Validationf("date_from inválida, formato AAAA-MM-DD")
		}
		f.DateFrom = &from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := dates.Parse(raw, h.loc)
		if err != nil {
			return f, domain.Validationf("date_to inválida, formato AAAA-MM-DD")
		}
		end := dates.EndOfDay(to)
		f.DateTo = &end
	}
	return f, nil
}

func parseBoolQuery(c *fiber.Ctx, key string) (*bool, error) {
	switch c.Query(key) {
	case "":
		return nil, nil
	case "true", "1":
		v := true
		return &v, nil
	case "false", "0":
		v := false
		return &v, nil
	default:
		return nil, domain.Validationf("%s debe ser true o false", key)
	}
}
