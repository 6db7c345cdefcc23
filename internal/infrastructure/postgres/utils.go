package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lunitaval/ventas-api/pkg/dates"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// sqlDate serializa un instante como fecha de calendario AAAA-MM-DD para
// compararlo contra columnas DATE. La fecha es la del instante en su propia
// zona (los llamadores ya trabajan en la zona del negocio).
func sqlDate(t time.Time) string {
	return t.Format(dates.Layout)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapa los comodines de LIKE/ILIKE en texto del usuario para
// que una búsqueda por "100%" no matchee cualquier cosa.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
