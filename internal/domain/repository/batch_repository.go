package repository

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
)

// BatchFilter filtros para el listado de inventario.
type BatchFilter struct {
	Search       string // subcadena en nombre de producto o código de lote
	CompanyID    string
	IncludeEmpty bool // incluir lotes archivados (0 unidades)
}

// BatchRepository define el puerto de persistencia para lotes.
type BatchRepository interface {
	// Create devuelve domain.ErrConflict si el código de lote ya existe.
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	// GetForUpdate bloquea la fila del lote hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Batch, error)
	GetByCode(ctx context.Context, code string) (*entity.Batch, error)
	// CountByCodePrefix cuenta lotes cuyo código empieza con codePrefix y cuya fecha de
	// fabricación cae en el mes/año indicado.
	CountByCodePrefix(ctx context.Context, codePrefix string, year int, month time.Month) (int, error)
	// ListAvailable lotes de producto+empresa con unidades > 0, ordenados por fecha de
	// fabricación ascendente y luego por código ascendente.
	ListAvailable(ctx context.Context, productName, companyID string) ([]*entity.Batch, error)
	List(ctx context.Context, filter BatchFilter) ([]*entity.BatchWithCompany, error)
	// ProductNames nombres distintos con stock para una empresa.
	ProductNames(ctx context.Context, companyID string) ([]string, error)
	CountByProductName(ctx context.Context, productName string) (int, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	// UpdateUnits fija las unidades restantes y la marca de archivo.
	UpdateUnits(ctx context.Context, id string, unitsRemaining int, archivedAt *time.Time, now time.Time) error
	// RewritePrefix reemplaza el segmento oldPrefix al inicio de cada código del producto.
	RewritePrefix(ctx context.Context, productName, oldPrefix, newPrefix string) (int64, error)
	Delete(ctx context.Context, id string) error
}
