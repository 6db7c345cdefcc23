package labels

import (
	"context"
	"fmt"
	"time"

	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
	"github.com/lunitaval/ventas-api/pkg/dates"
)

// UseCase genera etiquetas de envío en PDF para una venta, un lote de ids o
// todos los envíos programados de un día.
type UseCase struct {
	sales     repository.SaleRepository
	generator Generator
	loc       *time.Location
	batchMax  int
}

// NewUseCase construye el caso de uso.
func NewUseCase(sales repository.SaleRepository, generator Generator, loc *time.Location, batchMax int) *UseCase {
	return &UseCase{sales: sales, generator: generator, loc: loc, batchMax: batchMax}
}

// ForSale genera la etiqueta de una venta. Devuelve los bytes del PDF y el
// nombre de archivo sugerido.
func (uc *UseCase) ForSale(ctx context.Context, saleID int64) ([]byte, string, error) {
	sc, err := uc.sales.GetWithCustomer(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	if sc == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.generator.Generate(ctx, []repository.SaleWithCustomer{*sc})
	if err != nil {
		return nil, "", fmt.Errorf("generar etiqueta: %w", err)
	}
	return pdf, fmt.Sprintf("venta_%d.pdf", saleID), nil
}

// ForBatch genera un documento con una etiqueta por venta del lote. El
// tamaño del lote se valida antes de tocar el renderer.
func (uc *UseCase) ForBatch(ctx context.Context, ids []int64) ([]byte, string, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, "", domain.Validationf("el lote de etiquetas está vacío")
	}
	if len(ids) > uc.batchMax {
		return nil, "", domain.Validationf("el lote supera el máximo de %d etiquetas", uc.batchMax)
	}
	list, err := uc.sales.ListByIDs(ctx, ids)
	if err != nil {
		return nil, "", err
	}
	if len(list) == 0 {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.generator.Generate(ctx, list)
	if err != nil {
		return nil, "", fmt.Errorf("generar etiquetas: %w", err)
	}
	return pdf, "etiquetas.pdf", nil
}

// ForShippingDate genera las etiquetas de todos los envíos de cadetería
// programados para el día dado, ordenadas por id.
func (uc *UseCase) ForShippingDate(ctx context.Context, date string) ([]byte, string, error) {
	day, err := dates.Parse(date, uc.loc)
	if err != nil {
		return nil, "", domain.Validationf("%v", err)
	}
	list, err := uc.sales.ListByShippingDate(ctx, day)
	if err != nil {
		return nil, "", err
	}
	if len(list) == 0 {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.generator.Generate(ctx, list)
	if err != nil {
		return nil, "", fmt.Errorf("generar etiquetas del día: %w", err)
	}
	return pdf, fmt.Sprintf("etiquetas_%s.pdf", day.Format(dates.Layout)), nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
