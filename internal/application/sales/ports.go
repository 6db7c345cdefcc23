package sales

import (
	"context"

	"github.com/lunitaval/ventas-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con repos atados a una misma transacción.
// Toda mutación de varios pasos (validar → verificar → escribir) corre
// dentro de una sola transacción, sin estado intermedio visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(sales repository.SaleRepository, customers repository.CustomerRepository) error) error
}
