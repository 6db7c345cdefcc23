package dto

import (
	"github.com/shopspring/decimal"
)

// SummaryResponse resumen de ventas de un período.
type SummaryResponse struct {
	TotalSales   int             `json:"total_sales"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidSales    int             `json:"paid_sales"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	UnpaidSales  int             `json:"unpaid_sales"`
	UnpaidAmount decimal.Decimal `json:"unpaid_amount"`
	AvgTicket    decimal.Decimal `json:"avg_ticket"`
}

// GroupResponse agregación por canal o tipo de entrega.
type GroupResponse struct {
	Key   string          `json:"key"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// DailySalesResponse ventas de un día (solo días con al menos una venta).
type DailySalesResponse struct {
	Date  string          `json:"date"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// TopCustomerResponse cliente rankeado por monto en el período.
type TopCustomerResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Purchases int             `json:"purchases"`
	Total     decimal.Decimal `json:"total"`
}

// CompareResponse comparación de dos períodos con variación porcentual.
// Convención: si el período anterior vale 0, la variación es 100% cuando el
// actual es positivo y 0% si no (evita la división por cero).
type CompareResponse struct {
	Current  *SummaryResponse `json:"current"`
	Previous *SummaryResponse `json:"previous"`
	Changes  CompareChanges   `json:"changes"`
}

// CompareChanges variación porcentual por métrica.
type CompareChanges struct {
	SalesCount  decimal.Decimal `json:"sales_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	AvgTicket   decimal.Decimal `json:"avg_ticket"`
}

// MonthCountResponse cantidad de cambios de un mes calendario.
type MonthCountResponse struct {
	Month string `json:"month"` // "ene 2025"
	Count int    `json:"count"`
}

// DeliveryStatsResponse cubetas pendiente/vencido de un tipo de entrega.
type DeliveryStatsResponse struct {
	TotalPending int             `json:"total_pending"`
	TotalOverdue int             `json:"total_overdue"`
	Pending      []*SaleResponse `json:"pending"`
	Overdue      []*SaleResponse `json:"overdue"`
}

// ChangesStatsResponse estado de los cambios de mercadería.
type ChangesStatsResponse struct {
	TotalChanges     int             `json:"total_changes"`
	ChangesThisMonth int             `json:"changes_this_month"`
	TotalPending     int             `json:"total_pending"`
	TotalOverdue     int             `json:"total_overdue"`
	Pending          []*SaleResponse `json:"pending"`
	Overdue          []*SaleResponse `json:"overdue"`
}

// DashboardResponse datos principales del tablero: mes actual contra el
// anterior más los contadores de logística y cambios.
type DashboardResponse struct {
	Month    *CompareResponse      `json:"month"`
	Daily    []*DailySalesResponse `json:"daily"`
	Retiro   DeliveryCounters      `json:"retiro"`
	Correo   DeliveryCounters      `json:"correo"`
	Changes  DeliveryCounters      `json:"changes"`
}

// DeliveryCounters contadores pendiente/vencido sin el detalle de ventas.
type DeliveryCounters struct {
	Pending int `json:"pending"`
	Overdue int `json:"overdue"`
}
