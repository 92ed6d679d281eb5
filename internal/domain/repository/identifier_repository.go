package repository

import (
	"context"

	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
)

// IdentifierRepository registro nombre de producto -> prefijo.
type IdentifierRepository interface {
	GetByID(ctx context.Context, id string) (*entity.ProductIdentifier, error)
	GetByProductName(ctx context.Context, productName string) (*entity.ProductIdentifier, error)
	GetByPrefix(ctx context.Context, prefix string) (*entity.ProductIdentifier, error)
	// ListPrefixes devuelve todos los prefijos registrados.
	ListPrefixes(ctx context.Context) ([]string, error)
	List(ctx context.Context, search string) ([]*entity.ProductIdentifier, error)
	// Create devuelve domain.ErrConflict si el nombre o el prefijo ya están registrados.
	Create(ctx context.Context, identifier *entity.ProductIdentifier) error
	// UpdatePrefix devuelve domain.ErrConflict si el prefijo ya pertenece a otro producto.
	UpdatePrefix(ctx context.Context, identifier *entity.ProductIdentifier) error
	Delete(ctx context.Context, id string) error
}
