package repository

import (
	"context"

	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company.
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByName(ctx context.Context, name string) (*entity.Company, error)
	List(ctx context.Context) ([]*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id string) error
}
