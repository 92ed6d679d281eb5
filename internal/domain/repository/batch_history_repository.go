package repository

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
)

// BatchHistoryRepository historial de lotes vaciados (solo inserción).
type BatchHistoryRepository interface {
	Create(ctx context.Context, record *entity.BatchHistory) error
	// ListByEmptiedDate rango inclusivo de fechas, más recientes primero.
	ListByEmptiedDate(ctx context.Context, from, to time.Time) ([]*entity.BatchHistory, error)
}
