package dto

import (
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/domain"
)

// DateRangeQuery rango de fechas (YYYY-MM-DD, inclusive) para reportes.
type DateRangeQuery struct {
	From string `query:"from" json:"from" validate:"required,datetime=2006-01-02"`
	To   string `query:"to" json:"to" validate:"required,datetime=2006-01-02"`
}

// Bounds convierte el rango en [inicio del día From, último instante del día To] en loc.
func (q DateRangeQuery) Bounds(loc *time.Location) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation(time.DateOnly, q.From, loc)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("from", "fecha inválida")
	}
	to, err := time.ParseInLocation(time.DateOnly, q.To, loc)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("to", "fecha inválida")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, domain.NewValidationError("to", "debe ser posterior a from")
	}
	return from, to.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
