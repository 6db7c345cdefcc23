package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lunitaval/ventas-api/internal/domain/repository"
)

// SaleInput campos de alta/actualización de venta.
// Los punteros nil distinguen "no enviado" de valores en cero; en creación
// los ausentes se completan con defaults (booleanos en false) o se rechazan
// si son obligatorios. Las fechas viajan como AAAA-MM-DD en zona del negocio.
type SaleInput struct {
	CustomerID    *int64           `json:"customer_id"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod *string          `json:"payment_method"`
	Paid          *bool            `json:"paid"`
	Notes         *string          `json:"notes"`
	DeliveryType  *string          `json:"delivery_type"`
	ShippingDate  *string          `json:"shipping_date"`
	SalesChannel  *string          `json:"sales_channel"`
	IsCash        *bool            `json:"is_cash"`
	HasChange     *bool            `json:"has_change"`
	SaleDate      *string          `json:"sale_date"`
}

// SaleResponse representación HTTP de una venta con datos del cliente.
type SaleResponse struct {
	ID                int64           `json:"id"`
	CustomerID        int64           `json:"customer_id"`
	CustomerFirstName string          `json:"customer_first_name"`
	CustomerLastName  string          `json:"customer_last_name"`
	CustomerAddress   string          `json:"customer_address"`
	CustomerCity      string          `json:"customer_city"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentMethod     string          `json:"payment_method"`
	Paid              bool            `json:"paid"`
	Notes             string          `json:"notes"`
	DeliveryType      string          `json:"delivery_type"`
	HasShipping       bool            `json:"has_shipping"`
	ShippingDate      *string         `json:"shipping_date"`
	SalesChannel      string          `json:"sales_channel"`
	IsCash            bool            `json:"is_cash"`
	HasChange         bool            `json:"has_change"`
	SaleDate          time.Time       `json:"sale_date"`
	CreatedAt         time.Time       `json:"created_at"`
	DeliveredAt       *time.Time      `json:"delivered_at"`
	ShippedAt         *time.Time      `json:"shipped_at"`
	CompletedAt       *time.Time      `json:"completed_at"`
}

// SaleToResponse convierte una venta con cliente a su representación HTTP.
func SaleToResponse(sc *repository.SaleWithCustomer) *SaleResponse {
	s, c := &sc.Sale, &sc.Customer
	var shipping *string
	if s.ShippingDate != nil {
		v := s.ShippingDate.Format("2006-01-02")
		shipping = &v
	}
	return &SaleResponse{
		ID:                s.ID,
		CustomerID:        s.CustomerID,
		CustomerFirstName: c.FirstName,
		CustomerLastName:  c.LastName,
		CustomerAddress:   c.Address,
		CustomerCity:      c.City,
		Amount:            s.Amount,
		PaymentMethod:     s.PaymentMethod,
		Paid:              s.Paid,
		Notes:             s.Notes,
		DeliveryType:      string(s.DeliveryType),
		HasShipping:       s.HasShipping,
		ShippingDate:      shipping,
		SalesChannel:      s.SalesChannel,
		IsCash:            s.IsCash,
		HasChange:         s.HasChange,
		SaleDate:          s.SaleDate,
		CreatedAt:         s.CreatedAt,
		DeliveredAt:       s.DeliveredAt,
		ShippedAt:         s.ShippedAt,
		CompletedAt:       s.CompletedAt,
	}
}

// SalesToResponse convierte una lista de ventas con cliente.
func SalesToResponse(list []repository.SaleWithCustomer) []*SaleResponse {
	out := make([]*SaleResponse, 0, len(list))
	for i := range list {
		out = append(out, SaleToResponse(&list[i]))
	}
	return out
}

// SaleListResponse página de ventas con filtros aplicados.
type SaleListResponse struct {
	Sales []*SaleResponse `json:"sales"`
	Page  PageResponse    `json:"page"`
}

// ShipmentUpdateInput reprogramación de un envío de cadetería.
type ShipmentUpdateInput struct {
	ShippingDate *string `json:"shipping_date"`
	Notes        *string `json:"notes"`
}
