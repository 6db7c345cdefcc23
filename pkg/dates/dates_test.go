package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunitaval/ventas-api/pkg/dates"
)

var bsAs = func() *time.Location {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		panic(err)
	}
	return loc
}()

func TestDateOf_ConvierteALaZonaAntesDeTruncar(t *testing.T) {
	// 01:30 UTC del 11 de marzo todavía es 10 de marzo en Buenos Aires (UTC-3).
	instant := time.Date(2025, 3, 11, 1, 30, 0, 0, time.UTC)

	got := dates.DateOf(instant, bsAs)

	assert.Equal(t, 10, got.Day(), "truncar en UTC correría el día")
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, bsAs, got.Location())
	assert.Zero(t, got.Hour())
}

func TestParse_MedianocheLocal(t *testing.T) {
	got, err := dates.Parse("2025-03-10", bsAs)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, bsAs), got)
}

func TestParse_FormatoInvalido(t *testing.T) {
	_, err := dates.Parse("10/03/2025", bsAs)
	assert.Error(t, err)

	_, err = dates.Parse("2025-13-40", bsAs)
	assert.Error(t, err)
}

func TestRebase_ConservaElDiaDeCalendario(t *testing.T) {
	// Medianoche UTC (como escanea el driver una columna DATE) debe seguir
	// siendo el mismo día de calendario en la zona del negocio.
	scanned := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	got := dates.Rebase(scanned, bsAs)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, bsAs), got)
	// DateOf sobre el mismo instante correría al 9 de marzo: Rebase existe
	// justamente para no convertir el instante.
	assert.Equal(t, 9, dates.DateOf(scanned, bsAs).Day())
}

func TestStartAndEndOfMonth(t *testing.T) {
	d := time.Date(2025, 2, 14, 0, 0, 0, 0, bsAs)

	assert.Equal(t, 1, dates.StartOfMonth(d).Day())
	assert.Equal(t, 28, dates.EndOfMonth(d).Day(), "febrero 2025 no es bisiesto")

	bisiesto := time.Date(2024, 2, 10, 0, 0, 0, 0, bsAs)
	assert.Equal(t, 29, dates.EndOfMonth(bisiesto).Day())
}

func TestPreviousMonthRange_CruzaElAnio(t *testing.T) {
	d := time.Date(2025, 1, 15, 0, 0, 0, 0, bsAs)

	start, end := dates.PreviousMonthRange(d)

	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, bsAs), start)
	assert.Equal(t, 31, end.Day())
	assert.Equal(t, time.December, end.Month())
}

func TestEndOfDay_CierraRangosInclusivos(t *testing.T) {
	d := time.Date(2025, 3, 10, 0, 0, 0, 0, bsAs)

	got := dates.EndOfDay(d)

	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 59, got.Minute())
	assert.True(t, got.Before(d.AddDate(0, 0, 1)), "nunca pisa el día siguiente")
}
