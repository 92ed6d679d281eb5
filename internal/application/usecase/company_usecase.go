package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo      repository.CompanyRepository
	batchRepo repository.BatchRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, batchRepo repository.BatchRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, batchRepo: batchRepo}
}

// Create crea una nueva empresa. Devuelve domain.ErrDuplicate si el nombre o el GSTIN ya existen.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   strings.TrimSpace(in.Address),
		GSTNumber: strings.ToUpper(strings.TrimSpace(in.GSTNumber)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// List lista todas las empresas por nombre.
func (uc *CompanyUseCase) List(ctx context.Context) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return items, nil
}

// Update actualiza los campos enviados.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		company.Address = strings.TrimSpace(*in.Address)
	}
	if in.GSTNumber != nil {
		company.GSTNumber = strings.ToUpper(strings.TrimSpace(*in.GSTNumber))
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Delete elimina una empresa sin lotes. Con lotes registrados devuelve domain.ErrConflict.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	n, err := uc.batchRepo.CountByCompany(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: la empresa tiene %d lotes registrados", domain.ErrConflict, n)
	}
	return uc.repo.Delete(ctx, id)
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		GSTNumber: c.GSTNumber,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
