package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var bsAs = func() *time.Location {
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		panic(err)
	}
	return loc
}()

func TestSqlDate_FechaDeCalendarioSinZona(t *testing.T) {
	// Medianoche en Buenos Aires es 03:00 UTC: si el parámetro viajara como
	// instante, la promoción a timestamptz en la sesión correría el día.
	// Como fecha de calendario la comparación contra DATE es exacta.
	midnight := time.Date(2025, 3, 10, 0, 0, 0, 0, bsAs)
	assert.Equal(t, "2025-03-10", sqlDate(midnight))

	utc := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", sqlDate(utc))
}

func TestEscapeLike_NeutralizaComodines(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `ana\_maria`, escapeLike("ana_maria"))
	assert.Equal(t, `c\\d`, escapeLike(`c\d`))
	assert.Equal(t, "ana", escapeLike("ana"), "el texto sin comodines no cambia")
}
