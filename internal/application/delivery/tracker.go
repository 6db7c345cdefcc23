// Package delivery implementa el seguimiento logístico de las ventas:
// cubetas pendiente/vencido para retiro y correo, calendario de envíos de
// cadetería y el circuito aparte de cambios de mercadería (SLA de 48 hs).
package delivery

import (
	"context"
	"time"

	"github.com/lunitaval/ventas-api/internal/application/dto"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/internal/domain/entity"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
	"github.com/lunitaval/ventas-api/pkg/dates"
)

// TxRunner ejecuta el callback con repos atados a una misma transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(sales repository.SaleRepository, customers repository.CustomerRepository) error) error
}

// Config umbrales de vencimiento por tipo de entrega.
type Config struct {
	RetiroOverdueDays int
	CorreoOverdueDays int
	ChangeSLAHours    int
}

// Tracker deriva el estado logístico de las ventas y aplica las acciones
// terminales (entregado, enviado, cambio recibido).
type Tracker struct {
	sales repository.SaleRepository
	tx    TxRunner
	loc   *time.Location
	cfg   Config
}

// NewTracker construye el tracker.
func NewTracker(sales repository.SaleRepository, tx TxRunner, loc *time.Location, cfg Config) *Tracker {
	return &Tracker{sales: sales, tx: tx, loc: loc, cfg: cfg}
}

// RetiroStats cubetas pendiente/vencido de retiros por el local.
// Solo cuentan ventas pagadas y sin entregar; vencido = más de
// RetiroOverdueDays días desde la creación.
func (t *Tracker) RetiroStats(ctx context.Context) (*dto.DeliveryStatsResponse, error) {
	return t.statsByType(ctx, entity.DeliveryRetiro)
}

// CorreoStats cubetas pendiente/vencido de envíos por correo.
func (t *Tracker) CorreoStats(ctx context.Context) (*dto.DeliveryStatsResponse, error) {
	return t.statsByType(ctx, entity.DeliveryCorreo)
}

func (t *Tracker) statsByType(ctx context.Context, dt entity.DeliveryType) (*dto.DeliveryStatsResponse, error) {
	list, err := t.sales.ListPendingByType(ctx, dt)
	if err != nil {
		return nil, err
	}
	now := time.Now().In(t.loc)
	pending := make([]repository.SaleWithCustomer, 0, len(list))
	var overdue []repository.SaleWithCustomer
	for _, sc := range list {
		if sc.Sale.IsOverdue(now, t.cfg.RetiroOverdueDays, t.cfg.CorreoOverdueDays) {
			overdue = append(overdue, sc)
		} else {
			pending = append(pending, sc)
		}
	}
	return &dto.DeliveryStatsResponse{
		TotalPending: len(pending),
		TotalOverdue: len(overdue),
		Pending:      dto.SalesToResponse(pending),
		Overdue:      dto.SalesToResponse(overdue),
	}, nil
}

// MarkDelivered marca un retiro como entregado. Acción terminal: falla si la
// venta no es de retiro o ya fue entregada.
func (t *Tracker) MarkDelivered(ctx context.Context, saleID int64) error {
	return t.tx.Run(ctx, func(sales repository.SaleRepository, _ repository.CustomerRepository) error {
		sale, err := sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.DeliveryType != entity.DeliveryRetiro {
			return domain.Conflictf("solo los retiros pueden marcarse como entregados")
		}
		if sale.IsDelivered() {
			return domain.Conflictf("el pedido ya fue entregado")
		}
		now := time.Now().In(t.loc)
		sale.DeliveredAt = &now
		sale.CompletedAt = &now
		return sales.Update(ctx, sale)
	})
}

// MarkShipped marca un envío por correo como despachado. Acción terminal:
// falla si la venta no es de correo o ya fue enviada.
func (t *Tracker) MarkShipped(ctx context.Context, saleID int64) error {
	return t.tx.Run(ctx, func(sales repository.SaleRepository, _ repository.CustomerRepository) error {
		sale, err := sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.DeliveryType != entity.DeliveryCorreo {
			return domain.Conflictf("solo los pedidos de correo pueden marcarse como enviados")
		}
		if sale.IsDelivered() {
			return domain.Conflictf("el pedido ya fue enviado")
		}
		now := time.Now().In(t.loc)
		sale.ShippedAt = &now
		sale.DeliveredAt = &now
		sale.CompletedAt = &now
		return sales.Update(ctx, sale)
	})
}

// MarkChangeReceived marca un cambio de mercadería como recibido. Acción
// distinta de entregar/enviar: falla si la venta no es un cambio o ya fue
// recepcionada.
func (t *Tracker) MarkChangeReceived(ctx context.Context, saleID int64) error {
	return t.tx.Run(ctx, func(sales repository.SaleRepository, _ repository.CustomerRepository) error {
		sale, err := sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if !sale.HasChange {
			return domain.Conflictf("esta venta no es un cambio")
		}
		if sale.IsDelivered() {
			return domain.Conflictf("el cambio ya fue recepcionado")
		}
		now := time.Now().In(t.loc)
		sale.DeliveredAt = &now
		sale.CompletedAt = &now
		return sales.Update(ctx, sale)
	})
}

// ChangesStats estado de los cambios de mercadería: cubetas a 48 hs más los
// contadores total e histórico del mes en curso.
func (t *Tracker) ChangesStats(ctx context.Context) (*dto.ChangesStatsResponse, error) {
	list, err := t.sales.ListPendingChanges(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().In(t.loc)
	pending := make([]repository.SaleWithCustomer, 0, len(list))
	var overdue []repository.SaleWithCustomer
	for _, sc := range list {
		if sc.Sale.ChangeOverdue(now, t.cfg.ChangeSLAHours) {
			overdue = append(overdue, sc)
		} else {
			pending = append(pending, sc)
		}
	}

	total, err := t.sales.CountChanges(ctx)
	if err != nil {
		return nil, err
	}
	monthStart := dates.StartOfMonth(dates.Today(t.loc))
	thisMonth, err := t.sales.CountChangesBetween(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}

	return &dto.ChangesStatsResponse{
		TotalChanges:     total,
		ChangesThisMonth: thisMonth,
		TotalPending:     len(pending),
		TotalOverdue:     len(overdue),
		Pending:          dto.SalesToResponse(pending),
		Overdue:          dto.SalesToResponse(overdue),
	}, nil
}

// ShipmentCalendar envíos de cadetería programados en [from, to] (fechas de
// calendario en zona del negocio).
func (t *Tracker) ShipmentCalendar(ctx context.Context, from, to time.Time) ([]*dto.SaleResponse, error) {
	if to.Before(from) {
		return nil, domain.Validationf("el rango de fechas está invertido")
	}
	list, err := t.sales.ListByShippingRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return dto.SalesToResponse(list), nil
}

// UpdateShipment reprograma la fecha de envío o corrige las notas de un
// envío de cadetería. La nueva fecha se revalida contra hoy.
func (t *Tracker) UpdateShipment(ctx context.Context, saleID int64, in dto.ShipmentUpdateInput) error {
	return t.tx.Run(ctx, func(sales repository.SaleRepository, _ repository.CustomerRepository) error {
		sale, err := sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.DeliveryType != entity.DeliveryCadeteria {
			return domain.Conflictf("solo los envíos de cadetería tienen fecha programada")
		}
		if in.ShippingDate != nil {
			d, err := dates.Parse(*in.ShippingDate, t.loc)
			if err != nil {
				return domain.Validationf("shipping_date: %v", err)
			}
			if d.Before(dates.Today(t.loc)) {
				return domain.Validationf("shipping_date no puede ser anterior a hoy")
			}
			sale.ShippingDate = &d
		}
		if in.Notes != nil {
			sale.Notes = *in.Notes
		}
		return sales.Update(ctx, sale)
	})
}
