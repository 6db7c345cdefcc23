package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SummaryResult resumen de ventas de un período.
type SummaryResult struct {
	TotalSales   int
	TotalAmount  decimal.Decimal
	PaidSales    int
	PaidAmount   decimal.Decimal
	UnpaidSales  int
	UnpaidAmount decimal.Decimal
}

// GroupResult agregación por clave (canal o tipo de entrega).
type GroupResult struct {
	Key   string
	Count int
	Total decimal.Decimal
}

// DailyResult ventas de un día de calendario (zona del negocio).
type DailyResult struct {
	Date  time.Time
	Count int
	Total decimal.Decimal
}

// TopCustomerResult cliente rankeado por monto comprado en el período.
type TopCustomerResult struct {
	CustomerID int64
	Name       string
	Purchases  int
	Total      decimal.Decimal
}

// ReportsRepository consultas de agregación de solo lectura sobre ventas.
// Los rangos son instantes absolutos ya resueltos a la zona del negocio
// (inicio de día .. fin de día); la agrupación por día/mes se hace en SQL
// convirtiendo created_at a la zona del negocio.
type ReportsRepository interface {
	Summary(ctx context.Context, from, to time.Time) (*SummaryResult, error)
	ByChannel(ctx context.Context, from, to time.Time) ([]GroupResult, error)
	ByDeliveryType(ctx context.Context, from, to time.Time) ([]GroupResult, error)
	DailySales(ctx context.Context, from, to time.Time) ([]DailyResult, error)
	TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]TopCustomerResult, error)
}
