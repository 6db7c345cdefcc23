// Package dates centraliza la aritmética de fechas del negocio.
//
// Todas las comparaciones "de calendario" (shipping_date, vencimientos,
// rangos de reportes) se hacen sobre la fecha local del negocio, nunca
// sobre medianoche UTC: convertir ingenuamente a UTC corre el día para
// cualquier zona al oeste de Greenwich.
package dates

import (
	"fmt"
	"time"
)

// Layout es el formato de fecha de calendario usado en la API (ISO 8601).
const Layout = "2006-01-02"

// Today devuelve la fecha de hoy a medianoche en la zona del negocio.
func Today(loc *time.Location) time.Time {
	return DateOf(time.Now(), loc)
}

// DateOf trunca un instante a su fecha de calendario en la zona dada.
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// Parse interpreta una fecha AAAA-MM-DD como medianoche en la zona dada.
func Parse(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q (se espera AAAA-MM-DD)", s)
	}
	return t, nil
}

// Rebase reinterpreta los componentes de calendario de t (año, mes, día en
// la zona en la que viene expresado) como medianoche en la zona dada. Es la
// conversión correcta para columnas DATE, que el driver escanea como
// medianoche UTC: convertir ese instante con DateOf correría el día para
// cualquier zona al oeste de Greenwich.
func Rebase(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// StartOfMonth devuelve el día 1 del mes de la fecha dada, misma zona.
func StartOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// EndOfMonth devuelve el último día del mes de la fecha dada, misma zona.
func EndOfMonth(d time.Time) time.Time {
	return StartOfMonth(d).AddDate(0, 1, -1)
}

// PreviousMonthRange devuelve [día 1, último día] del mes anterior a la fecha dada.
func PreviousMonthRange(d time.Time) (start, end time.Time) {
	start = StartOfMonth(d).AddDate(0, -1, 0)
	end = EndOfMonth(start)
	return start, end
}

// EndOfDay devuelve el último instante del día (23:59:59.999999999) en su zona.
// Sirve para cerrar rangos inclusivos contra columnas timestamptz.
func EndOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), d.Location())
}
