package sales

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lunitaval/ventas-api/internal/application/dto"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/internal/domain/entity"
	"github.com/lunitaval/ventas-api/pkg/dates"
)

// ValidateAndNormalize aplica las reglas de ciclo de vida de una venta y
// devuelve la entidad lista para persistir.
//
// En creación (existing == nil) los campos obligatorios deben venir en el
// input; en actualización el input es parcial y se mezcla sobre la venta
// existente, revalidando el resultado completo. Orden de las reglas:
//
//  1. delivery_type: obligatorio al crear, siempre uno de los tres valores.
//  2. has_shipping se deriva: solo cadetería lleva envío programado.
//  3. sales_channel: obligatorio al crear.
//  4. con envío: shipping_date obligatoria, fecha de calendario en zona del
//     negocio, nunca anterior a hoy (sin programación retroactiva).
//  5. is_cash y paid son mutuamente excluyentes (el efectivo se concilia aparte).
//  6. booleanos ausentes quedan en false.
//
// Además: customer_id obligatorio al crear, amount estrictamente positivo y
// payment_method dentro del set aceptado.
func ValidateAndNormalize(in dto.SaleInput, existing *entity.Sale, today time.Time, loc *time.Location) (*entity.Sale, error) {
	isUpdate := existing != nil

	var sale entity.Sale
	if isUpdate {
		sale = *existing
	}

	// 1. Tipo de entrega
	if in.DeliveryType != nil {
		dt := entity.DeliveryType(strings.ToLower(strings.TrimSpace(*in.DeliveryType)))
		if !dt.Valid() {
			return nil, domain.Validationf("delivery_type %q no es válido (cadeteria, retiro o correo)", *in.DeliveryType)
		}
		sale.DeliveryType = dt
	} else if !isUpdate {
		return nil, domain.Validationf("delivery_type es obligatorio")
	}

	// 2. has_shipping derivado del tipo de entrega
	sale.HasShipping = sale.DeliveryType == entity.DeliveryCadeteria

	// 3. Canal de venta
	if in.SalesChannel != nil {
		sale.SalesChannel = strings.TrimSpace(*in.SalesChannel)
	}
	if !isUpdate && sale.SalesChannel == "" {
		return nil, domain.Validationf("sales_channel es obligatorio")
	}

	// 4. Fecha de envío (solo cadetería)
	if sale.HasShipping {
		if in.ShippingDate != nil {
			d, err := dates.Parse(*in.ShippingDate, loc)
			if err != nil {
				return nil, domain.Validationf("shipping_date: %v", err)
			}
			sale.ShippingDate = &d
		}
		if sale.ShippingDate == nil {
			return nil, domain.Validationf("shipping_date es obligatoria para envíos por cadetería")
		}
		// La fecha guardada llega de una columna DATE como medianoche UTC;
		// se reancla a la zona del negocio antes de comparar contra hoy.
		d := dates.Rebase(*sale.ShippingDate, loc)
		sale.ShippingDate = &d
		if sale.ShippingDate.Before(today) {
			return nil, domain.Validationf("shipping_date no puede ser anterior a hoy")
		}
	} else {
		// Los otros tipos de entrega nunca llevan fecha de envío.
		sale.ShippingDate = nil
	}

	// 5/6. Booleanos: default false y exclusión efectivo/pagada
	if in.Paid != nil {
		sale.Paid = *in.Paid
	}
	if in.IsCash != nil {
		sale.IsCash = *in.IsCash
	}
	if in.HasChange != nil {
		sale.HasChange = *in.HasChange
	}
	if sale.IsCash && sale.Paid {
		return nil, domain.Validationf("una venta en efectivo no puede marcarse pagada (se concilia aparte)")
	}

	// Cliente y monto
	if in.CustomerID != nil {
		sale.CustomerID = *in.CustomerID
	}
	if sale.CustomerID == 0 {
		return nil, domain.Validationf("customer_id es obligatorio")
	}
	if in.Amount != nil {
		sale.Amount = in.Amount.Round(2)
	}
	if !isUpdate && in.Amount == nil {
		return nil, domain.Validationf("amount es obligatorio")
	}
	if !sale.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.Validationf("amount debe ser mayor que cero")
	}

	// Método de pago
	if in.PaymentMethod != nil {
		sale.PaymentMethod = strings.ToLower(strings.TrimSpace(*in.PaymentMethod))
	}
	if !entity.ValidPaymentMethod(sale.PaymentMethod) {
		return nil, domain.Validationf("payment_method %q no es válido", sale.PaymentMethod)
	}

	if in.Notes != nil {
		sale.Notes = *in.Notes
	}

	// Fecha de venta: default hoy (zona del negocio)
	if in.SaleDate != nil {
		d, err := dates.Parse(*in.SaleDate, loc)
		if err != nil {
			return nil, domain.Validationf("sale_date: %v", err)
		}
		sale.SaleDate = d
	} else if sale.SaleDate.IsZero() {
		sale.SaleDate = today
	}

	return &sale, nil
}
