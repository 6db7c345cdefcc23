package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lunitaval/ventas-api/internal/domain/repository"
)

var _ repository.ReportsRepository = (*ReportsRepo)(nil)

// ReportsRepo consultas de agregación de solo lectura sobre ventas.
// Los totales usan COALESCE para devolver cero en períodos sin ventas, y la
// agrupación por día convierte created_at a la zona del negocio en SQL
// (agrupar por el día UTC correría las ventas nocturnas al día siguiente).
type ReportsRepo struct {
	q      Querier
	tzName string
}

// NewReportsRepository construye el adaptador con la zona horaria del negocio.
func NewReportsRepository(q Querier, tzName string) *ReportsRepo {
	return &ReportsRepo{q: q, tzName: tzName}
}

// Summary totales y conteos del período, abiertos por estado de pago.
func (r *ReportsRepo) Summary(ctx context.Context, from, to time.Time) (*repository.SummaryResult, error) {
	const query = `
	SELECT
	    COUNT(*)                                                   AS total_sales,
	    COALESCE(SUM(amount), 0)                                   AS total_amount,
	    COUNT(*) FILTER (WHERE paid)                               AS paid_sales,
	    COALESCE(SUM(amount) FILTER (WHERE paid), 0)               AS paid_amount,
	    COUNT(*) FILTER (WHERE NOT paid)                           AS unpaid_sales,
	    COALESCE(SUM(amount) FILTER (WHERE NOT paid), 0)           AS unpaid_amount
	FROM sales
	WHERE created_at BETWEEN $1 AND $2`

	var res repository.SummaryResult
	err := r.q.QueryRow(ctx, query, from, to).Scan(
		&res.TotalSales, &res.TotalAmount,
		&res.PaidSales, &res.PaidAmount,
		&res.UnpaidSales, &res.UnpaidAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.Summary: %w", err)
	}
	return &res, nil
}

// ByChannel ventas agrupadas por canal de venta, mayor total primero.
func (r *ReportsRepo) ByChannel(ctx context.Context, from, to time.Time) ([]repository.GroupResult, error) {
	const query = `
	SELECT sales_channel, COUNT(*), COALESCE(SUM(amount), 0)
	FROM sales
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY sales_channel
	ORDER BY 3 DESC, sales_channel`
	return r.queryGroups(ctx, "reports.ByChannel", query, from, to)
}

// ByDeliveryType ventas agrupadas por tipo de entrega, mayor total primero.
func (r *ReportsRepo) ByDeliveryType(ctx context.Context, from, to time.Time) ([]repository.GroupResult, error) {
	const query = `
	SELECT delivery_type, COUNT(*), COALESCE(SUM(amount), 0)
	FROM sales
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY delivery_type
	ORDER BY 3 DESC, delivery_type`
	return r.queryGroups(ctx, "reports.ByDeliveryType", query, from, to)
}

func (r *ReportsRepo) queryGroups(ctx context.Context, op, query string, from, to time.Time) ([]repository.GroupResult, error) {
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var out []repository.GroupResult
	for rows.Next() {
		var g repository.GroupResult
		if err := rows.Scan(&g.Key, &g.Count, &g.Total); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// DailySales ventas por día de calendario del negocio, ascendente.
// Solo aparecen los días con al menos una venta (sin rellenar huecos).
func (r *ReportsRepo) DailySales(ctx context.Context, from, to time.Time) ([]repository.DailyResult, error) {
	const query = `
	SELECT
	    (created_at AT TIME ZONE $3)::date AS day,
	    COUNT(*),
	    COALESCE(SUM(amount), 0)
	FROM sales
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY day
	ORDER BY day ASC`

	rows, err := r.q.Query(ctx, query, from, to, r.tzName)
	if err != nil {
		return nil, fmt.Errorf("reports.DailySales: %w", err)
	}
	defer rows.Close()
	var out []repository.DailyResult
	for rows.Next() {
		var d repository.DailyResult
		if err := rows.Scan(&d.Date, &d.Count, &d.Total); err != nil {
			return nil, fmt.Errorf("reports.DailySales scan: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TopCustomers clientes rankeados por monto comprado en el período,
// descendente, con desempate determinístico por id.
func (r *ReportsRepo) TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]repository.TopCustomerResult, error) {
	const query = `
	SELECT
	    c.id,
	    c.first_name || ' ' || c.last_name AS name,
	    COUNT(s.id)                        AS purchases,
	    COALESCE(SUM(s.amount), 0)         AS total
	FROM customers c
	JOIN sales s ON s.customer_id = c.id
	WHERE s.created_at BETWEEN $1 AND $2
	GROUP BY c.id, c.first_name, c.last_name
	ORDER BY total DESC, c.id ASC
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.TopCustomers: %w", err)
	}
	defer rows.Close()
	var out []repository.TopCustomerResult
	for rows.Next() {
		var t repository.TopCustomerResult
		if err := rows.Scan(&t.CustomerID, &t.Name, &t.Purchases, &t.Total); err != nil {
			return nil, fmt.Errorf("reports.TopCustomers scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
