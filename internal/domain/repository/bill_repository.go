package repository

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
)

// BillRepository facturas finalizadas (libro de solo inserción).
type BillRepository interface {
	// Create persiste la factura y completa bill.Number con el consecutivo asignado.
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	// ListByDate rango inclusivo de fechas de factura, más recientes primero.
	ListByDate(ctx context.Context, from, to time.Time) ([]*entity.Bill, error)
}
