// Package reports implementa las agregaciones de lectura sobre ventas:
// resúmenes por período, agrupaciones, ranking de clientes, comparación de
// períodos y tendencia mensual de cambios.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lunitaval/ventas-api/internal/application/dto"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
	"github.com/lunitaval/ventas-api/pkg/dates"
)

var hundred = decimal.NewFromInt(100)

// spanishMonths abreviaturas es-AR para la tendencia mensual.
var spanishMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// UseCase casos de uso de reportes.
type UseCase struct {
	repo  repository.ReportsRepository
	sales repository.SaleRepository
	loc   *time.Location
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ReportsRepository, sales repository.SaleRepository, loc *time.Location) *UseCase {
	return &UseCase{repo: repo, sales: sales, loc: loc}
}

// DefaultRange rango por defecto: del día 1 del mes en curso hasta hoy.
func (uc *UseCase) DefaultRange() (from, to time.Time) {
	today := dates.Today(uc.loc)
	return dates.StartOfMonth(today), today
}

// Summary resumen de ventas del rango [from, to] (fechas de calendario
// inclusivas). avg_ticket es 0 cuando no hubo ventas, nunca un error.
func (uc *UseCase) Summary(ctx context.Context, from, to time.Time) (*dto.SummaryResponse, error) {
	r, err := uc.repo.Summary(ctx, from, dates.EndOfDay(to))
	if err != nil {
		return nil, err
	}
	return summaryToResponse(r), nil
}

func summaryToResponse(r *repository.SummaryResult) *dto.SummaryResponse {
	avg := decimal.Zero
	if r.TotalSales > 0 {
		avg = r.TotalAmount.Div(decimal.NewFromInt(int64(r.TotalSales))).Round(2)
	}
	return &dto.SummaryResponse{
		TotalSales:   r.TotalSales,
		TotalAmount:  r.TotalAmount,
		PaidSales:    r.PaidSales,
		PaidAmount:   r.PaidAmount,
		UnpaidSales:  r.UnpaidSales,
		UnpaidAmount: r.UnpaidAmount,
		AvgTicket:    avg,
	}
}

// ByChannel ventas agrupadas por canal de venta.
func (uc *UseCase) ByChannel(ctx context.Context, from, to time.Time) ([]*dto.GroupResponse, error) {
	rows, err := uc.repo.ByChannel(ctx, from, dates.EndOfDay(to))
	if err != nil {
		return nil, err
	}
	return groupsToResponse(rows), nil
}

// ByDeliveryType ventas agrupadas por tipo de entrega.
func (uc *UseCase) ByDeliveryType(ctx context.Context, from, to time.Time) ([]*dto.GroupResponse, error) {
	rows, err := uc.repo.ByDeliveryType(ctx, from, dates.EndOfDay(to))
	if err != nil {
		return nil, err
	}
	return groupsToResponse(rows), nil
}

func groupsToResponse(rows []repository.GroupResult) []*dto.GroupResponse {
	out := make([]*dto.GroupResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.GroupResponse{Key: r.Key, Count: r.Count, Total: r.Total})
	}
	return out
}

// DailySales ventas por día de calendario, ascendente, solo días con ventas.
func (uc *UseCase) DailySales(ctx context.Context, from, to time.Time) ([]*dto.DailySalesResponse, error) {
	rows, err := uc.repo.DailySales(ctx, from, dates.EndOfDay(to))
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DailySalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.DailySalesResponse{
			Date:  r.Date.Format(dates.Layout),
			Count: r.Count,
			Total: r.Total,
		})
	}
	return out, nil
}

// TopCustomers clientes rankeados por monto comprado, descendente. El
// desempate es determinístico por id de cliente.
func (uc *UseCase) TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]*dto.TopCustomerResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.repo.TopCustomers(ctx, from, dates.EndOfDay(to), limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TopCustomerResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.TopCustomerResponse{
			ID:        r.CustomerID,
			Name:      r.Name,
			Purchases: r.Purchases,
			Total:     r.Total,
		})
	}
	return out, nil
}

// ComparePeriods compara los resúmenes de dos períodos y reporta la
// variación porcentual por métrica.
func (uc *UseCase) ComparePeriods(ctx context.Context, curFrom, curTo, prevFrom, prevTo time.Time) (*dto.CompareResponse, error) {
	current, err := uc.Summary(ctx, curFrom, curTo)
	if err != nil {
		return nil, err
	}
	previous, err := uc.Summary(ctx, prevFrom, prevTo)
	if err != nil {
		return nil, err
	}
	return &dto.CompareResponse{
		Current:  current,
		Previous: previous,
		Changes: dto.CompareChanges{
			SalesCount:  PercentChange(decimal.NewFromInt(int64(current.TotalSales)), decimal.NewFromInt(int64(previous.TotalSales))),
			TotalAmount: PercentChange(current.TotalAmount, previous.TotalAmount),
			AvgTicket:   PercentChange(current.AvgTicket, previous.AvgTicket),
		},
	}, nil
}

// PercentChange variación porcentual con la convención del negocio: si el
// valor anterior es 0, la variación es 100% cuando el actual es positivo y
// 0% si no. Es una decisión de política, no la fórmula general.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// MonthlyChangesTrend cantidad de cambios por mes calendario de los últimos
// n meses (incluido el actual), del más viejo al más nuevo.
func (uc *UseCase) MonthlyChangesTrend(ctx context.Context, months int) ([]*dto.MonthCountResponse, error) {
	if months <= 0 {
		months = 6
	}
	if months > 36 {
		return nil, domain.Validationf("months no puede superar 36")
	}
	today := dates.Today(uc.loc)
	out := make([]*dto.MonthCountResponse, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := dates.StartOfMonth(today).AddDate(0, -i, 0)
		end := dates.EndOfMonth(start)
		count, err := uc.sales.CountChangesBetween(ctx, start, dates.EndOfDay(end))
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.MonthCountResponse{
			Month: monthLabel(start),
			Count: count,
		})
	}
	return out, nil
}

func monthLabel(t time.Time) string {
	return spanishMonths[t.Month()-1] + " " + t.Format("2006")
}

// Dashboard datos principales del tablero: mes en curso contra el anterior,
// ventas diarias del mes y contadores de logística y cambios.
func (uc *UseCase) Dashboard(ctx context.Context, retiro, correo, changes dto.DeliveryCounters) (*dto.DashboardResponse, error) {
	today := dates.Today(uc.loc)
	curFrom := dates.StartOfMonth(today)
	prevFrom, prevTo := dates.PreviousMonthRange(today)

	month, err := uc.ComparePeriods(ctx, curFrom, today, prevFrom, prevTo)
	if err != nil {
		return nil, err
	}
	daily, err := uc.DailySales(ctx, curFrom, today)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		Month:   month,
		Daily:   daily,
		Retiro:  retiro,
		Correo:  correo,
		Changes: changes,
	}, nil
}
