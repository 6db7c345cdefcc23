package labels_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunitaval/ventas-api/internal/application/labels"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/internal/domain/entity"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
)

const batchMax = 100

var testLoc = func() *time.Location {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		panic(err)
	}
	return loc
}()

// fakeGenerator registra cada invocación; los tests de validación de lote
// verifican que nunca se llegue a renderizar.
type fakeGenerator struct {
	calls int
	items []repository.SaleWithCustomer
}

func (f *fakeGenerator) Generate(_ context.Context, items []repository.SaleWithCustomer) ([]byte, error) {
	f.calls++
	f.items = items
	return []byte("%PDF-fake"), nil
}

type fakeSaleRepo struct {
	repository.SaleRepository

	byID       map[int64]*repository.SaleWithCustomer
	requested  []int64
	byDate     []repository.SaleWithCustomer
	dateCalled bool
}

func (f *fakeSaleRepo) GetWithCustomer(_ context.Context, id int64) (*repository.SaleWithCustomer, error) {
	return f.byID[id], nil
}

func (f *fakeSaleRepo) ListByIDs(_ context.Context, ids []int64) ([]repository.SaleWithCustomer, error) {
	f.requested = ids
	var out []repository.SaleWithCustomer
	for _, id := range ids {
		if sc, ok := f.byID[id]; ok {
			out = append(out, *sc)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) ListByShippingDate(_ context.Context, _ time.Time) ([]repository.SaleWithCustomer, error) {
	f.dateCalled = true
	return f.byDate, nil
}

func saleWithCustomer(id int64) *repository.SaleWithCustomer {
	return &repository.SaleWithCustomer{
		Sale:     entity.Sale{ID: id, CustomerID: 1, DeliveryType: entity.DeliveryCadeteria},
		Customer: entity.Customer{ID: 1, FirstName: "Ana", LastName: "Pérez"},
	}
}

func TestForSale_GeneraYNombraElArchivo(t *testing.T) {
	repo := &fakeSaleRepo{byID: map[int64]*repository.SaleWithCustomer{42: saleWithCustomer(42)}}
	gen := &fakeGenerator{}
	uc := labels.NewUseCase(repo, gen, testLoc, batchMax)

	pdf, filename, err := uc.ForSale(context.Background(), 42)
	require.NoError(t, err)

	assert.NotEmpty(t, pdf)
	assert.Equal(t, "venta_42.pdf", filename)
	assert.Equal(t, 1, gen.calls)
}

func TestForSale_NoExiste(t *testing.T) {
	repo := &fakeSaleRepo{byID: map[int64]*repository.SaleWithCustomer{}}
	gen := &fakeGenerator{}
	uc := labels.NewUseCase(repo, gen, testLoc, batchMax)

	_, _, err := uc.ForSale(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, gen.calls)
}

func TestForBatch_DeduplicaIDs(t *testing.T) {
	repo := &fakeSaleRepo{byID: map[int64]*repository.SaleWithCustomer{
		1: saleWithCustomer(1),
		2: saleWithCustomer(2),
	}}
	gen := &fakeGenerator{}
	uc := labels.NewUseCase(repo, gen, testLoc, batchMax)

	_, filename, err := uc.ForBatch(context.Background(), []int64{1, 2, 1, 2, 1})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, repo.requested)
	assert.Equal(t, "etiquetas.pdf", filename)
	assert.Len(t, gen.items, 2)
}

func TestForBatch_LoteVacio(t *testing.T) {
	gen := &fakeGenerator{}
	uc := labels.NewUseCase(&fakeSaleRepo{}, gen, testLoc, batchMax)

	_, _, err := uc.ForBatch(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, gen.calls)
}

func TestForBatch_RechazaLoteExcedidoAntesDeRenderizar(t *testing.T) {
	repo := &fakeSaleRepo{}
	gen := &fakeGenerator{}
	uc := labels.NewUseCase(repo, gen, testLoc, batchMax)

	ids := make([]int64, 101)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	_, _, err := uc.ForBatch(context.Background(), ids)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, gen.calls, "el lote excedido se rechaza antes de tocar el renderer")
	assert.Nil(t, repo.requested, "tampoco se consulta la base")
}

func TestForBatch_101ConDuplicadosEntra(t *testing.T) {
	// 101 ids con un duplicado son 100 distintos: dentro del límite.
	repo := &fakeSaleRepo{byID: map[int64]*repository.SaleWithCustomer{}}
	for i := int64(1); i <= 100; i++ {
		repo.byID[i] = saleWithCustomer(i)
	}
	gen := &fakeGenerator{}
	uc := labels.NewUseCase(repo, gen, testLoc, batchMax)

	ids := make([]int64, 0, 101)
	for i := int64(1); i <= 100; i++ {
		ids = append(ids, i)
	}
	ids = append(ids, 1)

	_, _, err := uc.ForBatch(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
}

func TestForShippingDate_SinEnviosEs404(t *testing.T) {
	repo := &fakeSaleRepo{}
	gen := &fakeGenerator{}
	uc := labels.NewUseCase(repo, gen, testLoc, batchMax)

	_, _, err := uc.ForShippingDate(context.Background(), "2025-03-12")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, repo.dateCalled)
	assert.Zero(t, gen.calls)
}

func TestForShippingDate_NombraConLaFecha(t *testing.T) {
	repo := &fakeSaleRepo{byDate: []repository.SaleWithCustomer{*saleWithCustomer(1)}}
	gen := &fakeGenerator{}
	uc := labels.NewUseCase(repo, gen, testLoc, batchMax)

	_, filename, err := uc.ForShippingDate(context.Background(), "2025-03-12")
	require.NoError(t, err)
	assert.Equal(t, "etiquetas_2025-03-12.pdf", filename)
}

func TestForShippingDate_FechaInvalida(t *testing.T) {
	gen := &fakeGenerator{}
	uc := labels.NewUseCase(&fakeSaleRepo{}, gen, testLoc, batchMax)

	_, _, err := uc.ForShippingDate(context.Background(), "12/03/2025")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
