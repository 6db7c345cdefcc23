package customers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunitaval/ventas-api/internal/application/customers"
	"github.com/lunitaval/ventas-api/internal/application/dto"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/internal/domain/entity"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
)

var testLoc = func() *time.Location {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		panic(err)
	}
	return loc
}()

func ptr(s string) *string { return &s }

// fakeCustomerRepo repositorio en memoria indexado por id y teléfono.
type fakeCustomerRepo struct {
	repository.CustomerRepository

	byID    map[int64]*entity.Customer
	deleted []int64
	created *entity.Customer
	updated *entity.Customer
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	c.ID = int64(len(f.byID) + 1)
	f.created = c
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	return f.byID[id], nil
}

func (f *fakeCustomerRepo) GetByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	for _, c := range f.byID {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	f.updated = c
	return nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeSaleCounter solo responde CountByCustomer (regla de borrado).
type fakeSaleCounter struct {
	repository.SaleRepository
	count int
}

func (f *fakeSaleCounter) CountByCustomer(_ context.Context, _ int64) (int, error) {
	return f.count, nil
}

type fakeTx struct {
	sales     repository.SaleRepository
	customers repository.CustomerRepository
}

func (f *fakeTx) Run(ctx context.Context, fn func(repository.SaleRepository, repository.CustomerRepository) error) error {
	return fn(f.sales, f.customers)
}

func newUseCase(repo *fakeCustomerRepo, salesCount int) *customers.UseCase {
	counter := &fakeSaleCounter{count: salesCount}
	return customers.NewUseCase(repo, counter, &fakeTx{sales: counter, customers: repo}, testLoc, 20)
}

func validInput() dto.CustomerInput {
	return dto.CustomerInput{
		FirstName: ptr("Ana"),
		LastName:  ptr("Pérez"),
		Address:   ptr("Av. Corrientes 1234"),
		City:      ptr("CABA"),
		Phone:     ptr("11-5555-4433"),
	}
}

func TestCreate_NormalizaTelefono(t *testing.T) {
	repo := &fakeCustomerRepo{byID: map[int64]*entity.Customer{}}
	uc := newUseCase(repo, 0)

	resp, err := uc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "1155554433", resp.Phone, "el teléfono se guarda solo con dígitos")
	assert.Equal(t, "Ana", resp.FirstName)
}

func TestCreate_TelefonoDuplicado(t *testing.T) {
	repo := &fakeCustomerRepo{byID: map[int64]*entity.Customer{
		1: {ID: 1, Phone: "1155554433"},
	}}
	uc := newUseCase(repo, 0)

	_, err := uc.Create(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_CamposObligatorios(t *testing.T) {
	repo := &fakeCustomerRepo{byID: map[int64]*entity.Customer{}}
	uc := newUseCase(repo, 0)

	in := validInput()
	in.LastName = ptr("  ")
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_TelefonoInvalido(t *testing.T) {
	repo := &fakeCustomerRepo{byID: map[int64]*entity.Customer{}}
	uc := newUseCase(repo, 0)

	in := validInput()
	in.Phone = ptr("123")
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_ParcialConservaCampos(t *testing.T) {
	repo := &fakeCustomerRepo{byID: map[int64]*entity.Customer{
		1: {ID: 1, FirstName: "Ana", LastName: "Pérez", Address: "Av. Corrientes 1234", City: "CABA", Phone: "1155554433"},
	}}
	uc := newUseCase(repo, 0)

	resp, err := uc.Update(context.Background(), 1, dto.CustomerInput{City: ptr("Rosario")})
	require.NoError(t, err)

	assert.Equal(t, "Rosario", resp.City)
	assert.Equal(t, "Ana", resp.FirstName, "los campos no enviados no cambian")
}

func TestUpdate_NoExiste(t *testing.T) {
	repo := &fakeCustomerRepo{byID: map[int64]*entity.Customer{}}
	uc := newUseCase(repo, 0)

	_, err := uc.Update(context.Background(), 9, dto.CustomerInput{City: ptr("Rosario")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_ConVentasFalla(t *testing.T) {
	repo := &fakeCustomerRepo{byID: map[int64]*entity.Customer{
		1: {ID: 1, FirstName: "Ana", LastName: "Pérez", Phone: "1155554433"},
	}}
	uc := newUseCase(repo, 3)

	err := uc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrHasDependents)
	assert.Empty(t, repo.deleted)
}

func TestDelete_SinVentas(t *testing.T) {
	repo := &fakeCustomerRepo{byID: map[int64]*entity.Customer{
		1: {ID: 1, FirstName: "Ana", LastName: "Pérez", Phone: "1155554433"},
	}}
	uc := newUseCase(repo, 0)

	err := uc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestSearch_QueryVaciaDevuelveListaVacia(t *testing.T) {
	repo := &fakeCustomerRepo{byID: map[int64]*entity.Customer{}}
	uc := newUseCase(repo, 0)

	list, err := uc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, list)
}
