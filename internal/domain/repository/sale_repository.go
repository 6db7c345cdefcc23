package repository

import (
	"context"
	"time"

	"github.com/lunitaval/ventas-api/internal/domain/entity"
)

// SaleWithCustomer es una venta con los datos del cliente ya cargados
// (las vistas de logística y etiquetas siempre los necesitan juntos).
type SaleWithCustomer struct {
	Sale     entity.Sale
	Customer entity.Customer
}

// SaleFilter filtros del listado/exploración de ventas.
// Los punteros distinguen "sin filtro" de "filtrar por false/cero".
type SaleFilter struct {
	SalesChannel  string
	PaymentMethod string
	CustomerName  string // subcadena sobre nombre o apellido, sin mayúsculas
	Paid          *bool
	HasShipping   *bool
	DateFrom      *time.Time
	DateTo        *time.Time
	Limit         int
	Offset        int
}

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	GetWithCustomer(ctx context.Context, id int64) (*SaleWithCustomer, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id int64) error

	// List devuelve ventas filtradas ordenadas por creación descendente y el total sin paginar.
	List(ctx context.Context, f SaleFilter) ([]SaleWithCustomer, int, error)

	// ListPendingByType: ventas pagadas y no entregadas del tipo dado, por creación ascendente.
	ListPendingByType(ctx context.Context, dt entity.DeliveryType) ([]SaleWithCustomer, error)
	// ListPendingChanges: cambios (has_change) no entregados, por creación ascendente.
	ListPendingChanges(ctx context.Context) ([]SaleWithCustomer, error)
	CountChanges(ctx context.Context) (int, error)
	// CountChangesBetween: cambios creados en [from, to] (instantes absolutos).
	CountChangesBetween(ctx context.Context, from, to time.Time) (int, error)

	// ListByShippingRange: envíos de cadetería con shipping_date en [from, to], por fecha y id.
	ListByShippingRange(ctx context.Context, from, to time.Time) ([]SaleWithCustomer, error)
	// ListByShippingDate: envíos programados para el día exacto, por id ascendente.
	ListByShippingDate(ctx context.Context, date time.Time) ([]SaleWithCustomer, error)
	ListByIDs(ctx context.Context, ids []int64) ([]SaleWithCustomer, error)

	CountByCustomer(ctx context.Context, customerID int64) (int, error)
}
