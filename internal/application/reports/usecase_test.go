package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunitaval/ventas-api/internal/application/reports"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
)

var testLoc = func() *time.Location {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		panic(err)
	}
	return loc
}()

// fakeReportsRepo devuelve resultados fijos por período: el primer Summary
// recibe el período actual y el segundo el anterior.
type fakeReportsRepo struct {
	summaries []*repository.SummaryResult
	calls     int
	daily     []repository.DailyResult
	groups    []repository.GroupResult
	top       []repository.TopCustomerResult
}

func (f *fakeReportsRepo) Summary(_ context.Context, _, _ time.Time) (*repository.SummaryResult, error) {
	s := f.summaries[f.calls%len(f.summaries)]
	f.calls++
	return s, nil
}

func (f *fakeReportsRepo) ByChannel(_ context.Context, _, _ time.Time) ([]repository.GroupResult, error) {
	return f.groups, nil
}

func (f *fakeReportsRepo) ByDeliveryType(_ context.Context, _, _ time.Time) ([]repository.GroupResult, error) {
	return f.groups, nil
}

func (f *fakeReportsRepo) DailySales(_ context.Context, _, _ time.Time) ([]repository.DailyResult, error) {
	return f.daily, nil
}

func (f *fakeReportsRepo) TopCustomers(_ context.Context, _, _ time.Time, _ int) ([]repository.TopCustomerResult, error) {
	return f.top, nil
}

// fakeChangeCounter solo implementa CountChangesBetween para la tendencia.
type fakeChangeCounter struct {
	repository.SaleRepository
	counts []int
	calls  int
}

func (f *fakeChangeCounter) CountChangesBetween(_ context.Context, _, _ time.Time) (int, error) {
	n := f.counts[f.calls%len(f.counts)]
	f.calls++
	return n, nil
}

func TestPercentChange_FormulaGeneral(t *testing.T) {
	got := reports.PercentChange(decimal.NewFromInt(150), decimal.NewFromInt(100))
	assert.True(t, got.Equal(decimal.NewFromInt(50)), "de 100 a 150 es +50%%, obtuve %s", got)

	got = reports.PercentChange(decimal.NewFromInt(50), decimal.NewFromInt(100))
	assert.True(t, got.Equal(decimal.NewFromInt(-50)))
}

func TestPercentChange_AnteriorEnCero(t *testing.T) {
	// Política del negocio: 0 → algo positivo se reporta como 100%, no error.
	got := reports.PercentChange(decimal.NewFromInt(500), decimal.Zero)
	assert.True(t, got.Equal(decimal.NewFromInt(100)))

	got = reports.PercentChange(decimal.Zero, decimal.Zero)
	assert.True(t, got.IsZero())
}

func TestSummary_AvgTicketConVentas(t *testing.T) {
	repo := &fakeReportsRepo{summaries: []*repository.SummaryResult{{
		TotalSales:  4,
		TotalAmount: decimal.NewFromInt(10000),
		PaidSales:   3,
		PaidAmount:  decimal.NewFromInt(7500),
		UnpaidSales: 1,
	}}}
	uc := reports.NewUseCase(repo, nil, testLoc)

	from, to := uc.DefaultRange()
	resp, err := uc.Summary(context.Background(), from, to)
	require.NoError(t, err)

	assert.True(t, resp.AvgTicket.Equal(decimal.NewFromInt(2500)))
}

func TestSummary_AvgTicketCeroSinVentas(t *testing.T) {
	repo := &fakeReportsRepo{summaries: []*repository.SummaryResult{{}}}
	uc := reports.NewUseCase(repo, nil, testLoc)

	from, to := uc.DefaultRange()
	resp, err := uc.Summary(context.Background(), from, to)
	require.NoError(t, err)

	assert.True(t, resp.AvgTicket.IsZero(), "sin ventas el ticket promedio es 0, no un error")
	assert.Equal(t, 0, resp.TotalSales)
}

func TestComparePeriods_VariacionesPorMetrica(t *testing.T) {
	repo := &fakeReportsRepo{summaries: []*repository.SummaryResult{
		{TotalSales: 20, TotalAmount: decimal.NewFromInt(30000)},
		{TotalSales: 10, TotalAmount: decimal.NewFromInt(20000)},
	}}
	uc := reports.NewUseCase(repo, nil, testLoc)

	now := time.Now().In(testLoc)
	resp, err := uc.ComparePeriods(context.Background(), now.AddDate(0, -1, 0), now, now.AddDate(0, -2, 0), now.AddDate(0, -1, 0))
	require.NoError(t, err)

	assert.True(t, resp.Changes.SalesCount.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.Changes.TotalAmount.Equal(decimal.NewFromInt(50)))
}

func TestMonthlyChangesTrend_DelMasViejoAlMasNuevo(t *testing.T) {
	counter := &fakeChangeCounter{counts: []int{1, 2, 3}}
	uc := reports.NewUseCase(&fakeReportsRepo{}, counter, testLoc)

	trend, err := uc.MonthlyChangesTrend(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, trend, 3)

	assert.Equal(t, 1, trend[0].Count)
	assert.Equal(t, 3, trend[2].Count)
	// La etiqueta del último mes es el mes en curso.
	assert.Contains(t, trend[2].Month, time.Now().In(testLoc).Format("2006"))
}

func TestMonthlyChangesTrend_LimiteDeMeses(t *testing.T) {
	uc := reports.NewUseCase(&fakeReportsRepo{}, &fakeChangeCounter{counts: []int{0}}, testLoc)

	_, err := uc.MonthlyChangesTrend(context.Background(), 37)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTopCustomers_LimiteDefault(t *testing.T) {
	repo := &fakeReportsRepo{top: []repository.TopCustomerResult{
		{CustomerID: 1, Name: "Ana Pérez", Purchases: 5, Total: decimal.NewFromInt(50000)},
	}}
	uc := reports.NewUseCase(repo, nil, testLoc)

	from, to := uc.DefaultRange()
	rows, err := uc.TopCustomers(context.Background(), from, to, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana Pérez", rows[0].Name)
}
