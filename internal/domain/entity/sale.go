package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryType tipo de entrega de una venta.
type DeliveryType string

const (
	DeliveryCadeteria DeliveryType = "cadeteria" // envío programado por cadetería
	DeliveryRetiro    DeliveryType = "retiro"    // retiro por el local
	DeliveryCorreo    DeliveryType = "correo"    // envío por correo
)

// Valid informa si el tipo de entrega es uno de los tres conocidos.
func (d DeliveryType) Valid() bool {
	switch d {
	case DeliveryCadeteria, DeliveryRetiro, DeliveryCorreo:
		return true
	}
	return false
}

// PaymentMethods métodos de pago aceptados.
var PaymentMethods = []string{"efectivo", "transferencia", "tarjeta", "mercadopago"}

// ValidPaymentMethod informa si el método de pago está en el set aceptado.
func ValidPaymentMethod(m string) bool {
	for _, v := range PaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}

// Sale representa una venta. El monto usa decimal con 2 decimales fijos.
//
// has_shipping se deriva del tipo de entrega: solo cadetería lleva fecha
// de envío programada. delivered_at marcado = venta terminal para
// logística (no se puede volver a entregar ni enviar).
type Sale struct {
	ID            int64
	CustomerID    int64
	Amount        decimal.Decimal
	PaymentMethod string
	Paid          bool
	Notes         string
	DeliveryType  DeliveryType
	HasShipping   bool
	ShippingDate  *time.Time // fecha de calendario en zona del negocio; solo cadetería
	SalesChannel  string
	IsCash        bool
	HasChange     bool // la venta es un cambio de mercadería, no una compra nueva
	SaleDate      time.Time
	CreatedAt     time.Time
	DeliveredAt   *time.Time
	ShippedAt     *time.Time
	CompletedAt   *time.Time
}

// IsDelivered informa si la venta ya fue entregada/enviada (estado terminal).
func (s *Sale) IsDelivered() bool {
	return s.DeliveredAt != nil
}

// OverdueAfter devuelve el plazo de vencimiento según el tipo de entrega.
// Cadetería no participa del esquema pendiente/vencido (usa calendario de envíos).
func (s *Sale) OverdueAfter(retiroDays, correoDays int) (time.Duration, bool) {
	switch s.DeliveryType {
	case DeliveryRetiro:
		return time.Duration(retiroDays) * 24 * time.Hour, true
	case DeliveryCorreo:
		return time.Duration(correoDays) * 24 * time.Hour, true
	}
	return 0, false
}

// IsOverdue informa si la venta pendiente superó el plazo de su tipo de entrega.
func (s *Sale) IsOverdue(now time.Time, retiroDays, correoDays int) bool {
	if s.IsDelivered() {
		return false
	}
	limit, ok := s.OverdueAfter(retiroDays, correoDays)
	if !ok {
		return false
	}
	return now.Sub(s.CreatedAt) > limit
}

// ChangeOverdue informa si un cambio pendiente superó el SLA (horas desde la creación).
func (s *Sale) ChangeOverdue(now time.Time, slaHours int) bool {
	if !s.HasChange || s.IsDelivered() {
		return false
	}
	return now.Sub(s.CreatedAt) > time.Duration(slaHours)*time.Hour
}
