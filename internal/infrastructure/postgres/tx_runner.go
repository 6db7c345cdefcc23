package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunitaval/ventas-api/internal/application/customers"
	"github.com/lunitaval/ventas-api/internal/application/delivery"
	"github.com/lunitaval/ventas-api/internal/application/sales"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
)

// Verificación estática: TxRunner sirve a todos los contextos de aplicación.
var (
	_ sales.TxRunner     = (*TxRunner)(nil)
	_ delivery.TxRunner  = (*TxRunner)(nil)
	_ customers.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Cada
// mutación de varios pasos corre completa o no corre: el Rollback diferido
// descarta todo si el callback falla.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	salesRepo repository.SaleRepository,
	customersRepo repository.CustomerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSaleRepository(tx), NewCustomerRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
