package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/lunitaval/ventas-api/internal/application/dto"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
	"github.com/lunitaval/ventas-api/pkg/dates"
)

// UseCase casos de uso del ciclo de vida de ventas.
type UseCase struct {
	sales    repository.SaleRepository
	tx       TxRunner
	loc      *time.Location
	pageSize int
}

// NewUseCase construye el caso de uso.
func NewUseCase(sales repository.SaleRepository, tx TxRunner, loc *time.Location, pageSize int) *UseCase {
	return &UseCase{sales: sales, tx: tx, loc: loc, pageSize: pageSize}
}

// Create valida, normaliza y persiste una venta nueva. La existencia del
// cliente se verifica dentro de la misma transacción que el insert.
func (uc *UseCase) Create(ctx context.Context, in dto.SaleInput) (*dto.SaleResponse, error) {
	sale, err := ValidateAndNormalize(in, nil, dates.Today(uc.loc), uc.loc)
	if err != nil {
		return nil, err
	}
	now := time.Now().In(uc.loc)
	sale.CreatedAt = now

	err = uc.tx.Run(ctx, func(salesRepo repository.SaleRepository, customers repository.CustomerRepository) error {
		customer, err := customers.GetByID(ctx, sale.CustomerID)
		if err != nil {
			return fmt.Errorf("verificar cliente: %w", err)
		}
		if customer == nil {
			return domain.Validationf("el cliente %d no existe", sale.CustomerID)
		}
		return salesRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, sale.ID)
}

// Get devuelve una venta con los datos del cliente.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sc, err := uc.sales.GetWithCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, domain.ErrNotFound
	}
	return dto.SaleToResponse(sc), nil
}

// Update aplica una actualización parcial revalidando la venta completa.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.SaleInput) (*dto.SaleResponse, error) {
	err := uc.tx.Run(ctx, func(salesRepo repository.SaleRepository, customers repository.CustomerRepository) error {
		existing, err := salesRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		sale, err := ValidateAndNormalize(in, existing, dates.Today(uc.loc), uc.loc)
		if err != nil {
			return err
		}
		if sale.CustomerID != existing.CustomerID {
			customer, err := customers.GetByID(ctx, sale.CustomerID)
			if err != nil {
				return fmt.Errorf("verificar cliente: %w", err)
			}
			if customer == nil {
				return domain.Validationf("el cliente %d no existe", sale.CustomerID)
			}
		}
		return salesRepo.Update(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Delete elimina una venta (no tiene entidades hijas).
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	return uc.sales.Delete(ctx, id)
}

// MarkPaid marca la venta como pagada. Transición monotónica: falla si ya
// está pagada, y las ventas en efectivo no se marcan (se concilian aparte).
func (uc *UseCase) MarkPaid(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(salesRepo repository.SaleRepository, _ repository.CustomerRepository) error {
		sale, err := salesRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Paid {
			return domain.Conflictf("la venta ya está pagada")
		}
		if sale.IsCash {
			return domain.Conflictf("una venta en efectivo se concilia aparte, no se marca pagada")
		}
		sale.Paid = true
		return salesRepo.Update(ctx, sale)
	})
}

// List devuelve ventas filtradas y paginadas con el total.
func (uc *UseCase) List(ctx context.Context, f repository.SaleFilter) (*dto.SaleListResponse, error) {
	if f.Limit <= 0 {
		f.Limit = uc.pageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, total, err := uc.sales.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.SaleListResponse{
		Sales: dto.SalesToResponse(list),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// Last devuelve las últimas ventas creadas con los datos del cliente.
func (uc *UseCase) Last(ctx context.Context, limit int) ([]*dto.SaleResponse, error) {
	if limit <= 0 || limit > uc.pageSize {
		limit = uc.pageSize
	}
	list, _, err := uc.sales.List(ctx, repository.SaleFilter{Limit: limit})
	if err != nil {
		return nil, err
	}
	return dto.SalesToResponse(list), nil
}
