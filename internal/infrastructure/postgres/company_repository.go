package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, address, gst_number, created_at, updated_at`

// Create persiste una nueva empresa. Nombre o GST repetidos => domain.ErrDuplicate.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, address, gst_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.Address, company.GSTNumber,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: empresa con el mismo nombre o GST", domain.ErrDuplicate)
		}
		return storageErr("insert company", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, "get company", `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByName obtiene una empresa por nombre exacto.
func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	return r.getOne(ctx, "get company by name", `SELECT `+companyColumns+` FROM companies WHERE name = $1`, name)
}

func (r *CompanyRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.Address, &c.GSTNumber, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storageErr(op, err)
	}
	return &c, nil
}

// List lista todas las empresas ordenadas por nombre.
func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name`)
	if err != nil {
		return nil, storageErr("list companies", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.GSTNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, storageErr("scan company", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list companies", err)
	}
	return list, nil
}

// Update actualiza nombre, dirección y GST.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, address = $3, gst_number = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, company.ID, company.Name, company.Address, company.GSTNumber, company.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: empresa con el mismo nombre o GST", domain.ErrDuplicate)
		}
		return storageErr("update company", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una empresa. Si tiene lotes => domain.ErrConflict.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la empresa tiene lotes registrados", domain.ErrConflict)
		}
		return storageErr("delete company", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
