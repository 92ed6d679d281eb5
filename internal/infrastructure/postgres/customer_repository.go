package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, mobile, address, created_at, updated_at`

func scanCustomer(row interface{ Scan(...any) error }) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Mobile, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente. Móvil repetido => domain.ErrDuplicate.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, mobile, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Mobile, c.Address, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un cliente con ese móvil", domain.ErrDuplicate)
		}
		return storageErr("insert customer", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storageErr("get customer", err)
	}
	return c, nil
}

// GetByMobile obtiene un cliente por número de móvil.
func (r *CustomerRepo) GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE mobile = $1`, mobile))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storageErr("get customer by mobile", err)
	}
	return c, nil
}

// List busca por subcadena en nombre o móvil (sin distinguir mayúsculas).
func (r *CustomerRepo) List(ctx context.Context, search string) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE $1 = '' OR name ILIKE $2 OR mobile ILIKE $2
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, search, likePattern(search))
	if err != nil {
		return nil, storageErr("list customers", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, storageErr("scan customer", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list customers", err)
	}
	return list, nil
}

// Update actualiza los datos del cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `UPDATE customers SET name = $2, mobile = $3, address = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Mobile, c.Address, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un cliente con ese móvil", domain.ErrDuplicate)
		}
		return storageErr("update customer", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente. Las facturas guardan copia de sus datos, no una referencia.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete customer", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
