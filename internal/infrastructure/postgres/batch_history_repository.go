package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

var _ repository.BatchHistoryRepository = (*BatchHistoryRepo)(nil)

// BatchHistoryRepo historial de lotes vaciados sobre PostgreSQL.
type BatchHistoryRepo struct {
	q Querier
}

// NewBatchHistoryRepository construye el adaptador.
func NewBatchHistoryRepository(q Querier) *BatchHistoryRepo {
	return &BatchHistoryRepo{q: q}
}

// Create inserta un registro de historial.
func (r *BatchHistoryRepo) Create(ctx context.Context, h *entity.BatchHistory) error {
	query := `
		INSERT INTO batch_history (id, batch_id, product_name, batch_code, company_name, initial_units,
			manufacture_date, expiry_date, emptied_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.BatchID, h.ProductName, h.BatchCode, h.CompanyName, h.InitialUnits,
		h.ManufactureDate, h.ExpiryDate, h.EmptiedDate, h.CreatedAt,
	)
	if err != nil {
		return storageErr("insert batch history", err)
	}
	return nil
}

// ListByEmptiedDate registros vaciados entre from y to (inclusive), más recientes primero.
func (r *BatchHistoryRepo) ListByEmptiedDate(ctx context.Context, from, to time.Time) ([]*entity.BatchHistory, error) {
	query := `
		SELECT id, batch_id, product_name, batch_code, company_name, initial_units,
			manufacture_date, expiry_date, emptied_date, created_at
		FROM batch_history
		WHERE emptied_date >= $1 AND emptied_date <= $2
		ORDER BY emptied_date DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, storageErr("list batch history", err)
	}
	defer rows.Close()

	var list []*entity.BatchHistory
	for rows.Next() {
		var h entity.BatchHistory
		if err := rows.Scan(
			&h.ID, &h.BatchID, &h.ProductName, &h.BatchCode, &h.CompanyName, &h.InitialUnits,
			&h.ManufactureDate, &h.ExpiryDate, &h.EmptiedDate, &h.CreatedAt,
		); err != nil {
			return nil, storageErr("scan batch history", err)
		}
		list = append(list, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list batch history", err)
	}
	return list, nil
}
