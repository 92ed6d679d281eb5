package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

var _ repository.IdentifierRepository = (*IdentifierRepo)(nil)

// IdentifierRepo registro nombre de producto -> prefijo sobre PostgreSQL.
type IdentifierRepo struct {
	q Querier
}

// NewIdentifierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIdentifierRepository(q Querier) *IdentifierRepo {
	return &IdentifierRepo{q: q}
}

const identifierColumns = `id, product_name, prefix, created_at, updated_at`

func (r *IdentifierRepo) getOne(ctx context.Context, op, where string, arg any) (*entity.ProductIdentifier, error) {
	var p entity.ProductIdentifier
	err := r.q.QueryRow(ctx, `SELECT `+identifierColumns+` FROM product_identifiers WHERE `+where, arg).Scan(
		&p.ID, &p.ProductName, &p.Prefix, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storageErr(op, err)
	}
	return &p, nil
}

// GetByID obtiene un identificador por ID.
func (r *IdentifierRepo) GetByID(ctx context.Context, id string) (*entity.ProductIdentifier, error) {
	return r.getOne(ctx, "get identifier", "id = $1", id)
}

// GetByProductName obtiene el identificador de un producto.
func (r *IdentifierRepo) GetByProductName(ctx context.Context, productName string) (*entity.ProductIdentifier, error) {
	return r.getOne(ctx, "get identifier by product", "product_name = $1", productName)
}

// GetByPrefix obtiene el identificador dueño de un prefijo.
func (r *IdentifierRepo) GetByPrefix(ctx context.Context, prefix string) (*entity.ProductIdentifier, error) {
	return r.getOne(ctx, "get identifier by prefix", "prefix = $1", prefix)
}

// ListPrefixes devuelve todos los prefijos registrados.
func (r *IdentifierRepo) ListPrefixes(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT prefix FROM product_identifiers`)
	if err != nil {
		return nil, storageErr("list prefixes", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, storageErr("scan prefix", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list prefixes", err)
	}
	return out, nil
}

// List busca por subcadena en nombre de producto o prefijo.
func (r *IdentifierRepo) List(ctx context.Context, search string) ([]*entity.ProductIdentifier, error) {
	query := `SELECT ` + identifierColumns + ` FROM product_identifiers
		WHERE $1 = '' OR product_name ILIKE $2 OR prefix ILIKE $2
		ORDER BY product_name`
	rows, err := r.q.Query(ctx, query, search, likePattern(search))
	if err != nil {
		return nil, storageErr("list identifiers", err)
	}
	defer rows.Close()

	var list []*entity.ProductIdentifier
	for rows.Next() {
		var p entity.ProductIdentifier
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Prefix, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, storageErr("scan identifier", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list identifiers", err)
	}
	return list, nil
}

// Create registra un par (producto, prefijo). Otro registro con el mismo nombre o prefijo
// (por ejemplo una segunda instancia que ganó la carrera) => domain.ErrConflict.
func (r *IdentifierRepo) Create(ctx context.Context, p *entity.ProductIdentifier) error {
	query := `
		INSERT INTO product_identifiers (id, product_name, prefix, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, p.ID, p.ProductName, p.Prefix, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: prefijo %q o producto %q ya registrado", domain.ErrConflict, p.Prefix, p.ProductName)
		}
		return storageErr("insert identifier", err)
	}
	return nil
}

// UpdatePrefix cambia el prefijo de un identificador.
func (r *IdentifierRepo) UpdatePrefix(ctx context.Context, p *entity.ProductIdentifier) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE product_identifiers SET prefix = $2, updated_at = $3 WHERE id = $1`,
		p.ID, p.Prefix, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el prefijo %q pertenece a otro producto", domain.ErrConflict, p.Prefix)
		}
		return storageErr("update identifier", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un identificador.
func (r *IdentifierRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM product_identifiers WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete identifier", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
