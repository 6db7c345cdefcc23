package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunitaval/ventas-api/internal/application/sales"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/internal/domain/entity"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
)

type fakeSaleRepo struct {
	repository.SaleRepository

	byID    map[int64]*entity.Sale
	updated *entity.Sale
}

func (f *fakeSaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	return f.byID[id], nil
}

func (f *fakeSaleRepo) Update(_ context.Context, s *entity.Sale) error {
	f.updated = s
	return nil
}

type fakeTx struct {
	sales repository.SaleRepository
}

func (f *fakeTx) Run(ctx context.Context, fn func(repository.SaleRepository, repository.CustomerRepository) error) error {
	return fn(f.sales, nil)
}

func newUseCase(repo *fakeSaleRepo) *sales.UseCase {
	return sales.NewUseCase(repo, &fakeTx{sales: repo}, testLoc, 20)
}

func TestMarkPaid_TransicionValida(t *testing.T) {
	sale := &entity.Sale{ID: 1, Amount: decimal.NewFromInt(5000), PaymentMethod: "transferencia"}
	repo := &fakeSaleRepo{byID: map[int64]*entity.Sale{1: sale}}

	err := newUseCase(repo).MarkPaid(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.True(t, repo.updated.Paid)
}

func TestMarkPaid_YaPagadaEsConflicto(t *testing.T) {
	sale := &entity.Sale{ID: 1, Paid: true}
	repo := &fakeSaleRepo{byID: map[int64]*entity.Sale{1: sale}}

	err := newUseCase(repo).MarkPaid(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, repo.updated)
}

func TestMarkPaid_EfectivoEsConflicto(t *testing.T) {
	// El efectivo se concilia aparte: nunca pasa por el circuito de cobro.
	sale := &entity.Sale{ID: 1, IsCash: true}
	repo := &fakeSaleRepo{byID: map[int64]*entity.Sale{1: sale}}

	err := newUseCase(repo).MarkPaid(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, repo.updated)
}

func TestMarkPaid_NoExiste(t *testing.T) {
	repo := &fakeSaleRepo{byID: map[int64]*entity.Sale{}}

	err := newUseCase(repo).MarkPaid(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
