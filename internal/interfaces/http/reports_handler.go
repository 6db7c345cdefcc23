package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lunitaval/ventas-api/internal/application/delivery"
	"github.com/lunitaval/ventas-api/internal/application/dto"
	"github.com/lunitaval/ventas-api/internal/application/reports"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/pkg/dates"
)

// ReportsHandler endpoints de reportes y tablero.
type ReportsHandler struct {
	uc      *reports.UseCase
	tracker *delivery.Tracker
	loc     *time.Location
}

func NewReportsHandler(uc *reports.UseCase, tracker *delivery.Tracker, loc *time.Location) *ReportsHandler {
	return &ReportsHandler{uc: uc, tracker: tracker, loc: loc}
}

// Summary GET /api/reports/summary?from=&to=
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	from, to, err := h.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	resp, err := h.uc.Summary(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ByChannel GET /api/reports/by-channel?from=&to=
func (h *ReportsHandler) ByChannel(c *fiber.Ctx) error {
	from, to, err := h.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.uc.ByChannel(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"groups": rows})
}

// ByDeliveryType GET /api/reports/by-delivery-type?from=&to=
func (h *ReportsHandler) ByDeliveryType(c *fiber.Ctx) error {
	from, to, err := h.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.uc.ByDeliveryType(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"groups": rows})
}

// Daily GET /api/reports/daily?from=&to=
func (h *ReportsHandler) Daily(c *fiber.Ctx) error {
	from, to, err := h.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.uc.DailySales(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"daily": rows})
}

// TopCustomers GET /api/reports/top-customers?from=&to=&limit=
func (h *ReportsHandler) TopCustomers(c *fiber.Ctx) error {
	from, to, err := h.parseRange(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.uc.TopCustomers(c.Context(), from, to, c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"customers": rows})
}

// Compare GET /api/reports/compare — mes en curso contra el mes anterior, o
// dos rangos explícitos vía from/to y prev_from/prev_to.
func (h *ReportsHandler) Compare(c *fiber.Ctx) error {
	today := dates.Today(h.loc)
	curFrom := dates.StartOfMonth(today)
	curTo := today
	prevFrom, prevTo := dates.PreviousMonthRange(today)

	var err error
	if c.Query("from") != "" || c.Query("to") != "" {
		if curFrom, curTo, err = h.parseRange(c); err != nil {
			return respondError(c, err)
		}
	}
	if c.Query("prev_from") != "" || c.Query("prev_to") != "" {
		if prevFrom, prevTo, err = h.parseRangeKeys(c, "prev_from", "prev_to"); err != nil {
			return respondError(c, err)
		}
	}

	resp, err := h.uc.ComparePeriods(c.Context(), curFrom, curTo, prevFrom, prevTo)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ChangesTrend GET /api/reports/changes/trend?months=
func (h *ReportsHandler) ChangesTrend(c *fiber.Ctx) error {
	rows, err := h.uc.MonthlyChangesTrend(c.Context(), c.QueryInt("months"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"trend": rows})
}

// Dashboard GET /api/reports/dashboard — agrega la comparación mensual con
// los contadores de logística y cambios.
func (h *ReportsHandler) Dashboard(c *fiber.Ctx) error {
	retiro, err := h.tracker.RetiroStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	correo, err := h.tracker.CorreoStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	changes, err := h.tracker.ChangesStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	resp, err := h.uc.Dashboard(c.Context(),
		dto.DeliveryCounters{Pending: retiro.TotalPending, Overdue: retiro.TotalOverdue},
		dto.DeliveryCounters{Pending: correo.TotalPending, Overdue: correo.TotalOverdue},
		dto.DeliveryCounters{Pending: changes.TotalPending, Overdue: changes.TotalOverdue},
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// parseRange lee from/to de la query string; sin parámetros usa el rango por
// defecto (mes en curso hasta hoy).
func (h *ReportsHandler) parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	return h.parseRangeKeys(c, "from", "to")
}

func (h *ReportsHandler) parseRangeKeys(c *fiber.Ctx, fromKey, toKey string) (time.Time, time.Time, error) {
	from, to := h.uc.DefaultRange()
	if raw := c.Query(fromKey); raw != "" {
		d, err := dates.Parse(raw, h.loc)
		if err != nil {
			return from, to, domain.Validationf("%s inválida, formato AAAA-MM-DD", fromKey)
		}
		from = d
	}
	if raw := c.Query(toKey); raw != "" {
		d, err := dates.Parse(raw, h.loc)
		if err != nil {
			return from, to, domain.Validationf("%s inválida, formato AAAA-MM-DD", toKey)
		}
		to = d
	}
	if to.Before(from) {
		return from, to, domain.Validationf("el rango de fechas está invertido")
	}
	return from, to, nil
}
