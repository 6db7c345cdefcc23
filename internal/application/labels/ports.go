package labels

import (
	"context"

	"github.com/lunitaval/ventas-api/internal/domain/repository"
)

// Generator renderiza etiquetas de envío (una página de 100×150 mm por
// venta) y devuelve los bytes del documento.
type Generator interface {
	Generate(ctx context.Context, items []repository.SaleWithCustomer) ([]byte, error)
}
