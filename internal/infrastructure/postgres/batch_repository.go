package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `b.id, b.product_name, b.company_id, b.manufacture_date, b.expiry_date, b.batch_code,
	b.mrp, b.discount_pct, b.hsn_code, b.initial_units, b.units_remaining, b.unit_rate,
	b.taxable_amount, b.igst, b.cgst, b.sgst, b.total_amount, b.amount_in_words,
	b.archived_at, b.created_at, b.updated_at`

func batchDest(b *entity.Batch) []any {
	return []any{
		&b.ID, &b.ProductName, &b.CompanyID, &b.ManufactureDate, &b.ExpiryDate, &b.BatchCode,
		&b.MRP, &b.DiscountPct, &b.HSNCode, &b.InitialUnits, &b.UnitsRemaining, &b.UnitRate,
		&b.TaxableAmount, &b.IGST, &b.CGST, &b.SGST, &b.TotalAmount, &b.AmountInWords,
		&b.ArchivedAt, &b.CreatedAt, &b.UpdatedAt,
	}
}

// Create persiste un lote nuevo. Código repetido => domain.ErrConflict.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (id, product_name, company_id, manufacture_date, expiry_date, batch_code,
			mrp, discount_pct, hsn_code, initial_units, units_remaining, unit_rate,
			taxable_amount, igst, cgst, sgst, total_amount, amount_in_words,
			archived_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.ProductName, b.CompanyID, b.ManufactureDate, b.ExpiryDate, b.BatchCode,
		b.MRP, b.DiscountPct, b.HSNCode, b.InitialUnits, b.UnitsRemaining, b.UnitRate,
		b.TaxableAmount, b.IGST, b.CGST, b.SGST, b.TotalAmount, b.AmountInWords,
		b.ArchivedAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el código de lote %q ya existe", domain.ErrConflict, b.BatchCode)
		}
		return storageErr("insert batch", err)
	}
	return nil
}

func (r *BatchRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Batch, error) {
	var b entity.Batch
	if err := r.q.QueryRow(ctx, query, arg).Scan(batchDest(&b)...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, storageErr(op, err)
	}
	return &b, nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	return r.getOne(ctx, "get batch", `SELECT `+batchColumns+` FROM batches b WHERE b.id = $1`, id)
}

// GetForUpdate obtiene el lote y bloquea la fila para update (SELECT FOR UPDATE).
func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return r.getOne(ctx, "get batch for update", `SELECT `+batchColumns+` FROM batches b WHERE b.id = $1 FOR UPDATE`, id)
}

// GetByCode obtiene un lote por su código.
func (r *BatchRepo) GetByCode(ctx context.Context, code string) (*entity.Batch, error) {
	return r.getOne(ctx, "get batch by code", `SELECT `+batchColumns+` FROM batches b WHERE b.batch_code = $1`, code)
}

// CountByCodePrefix cuenta lotes (incluidos los archivados) con código que empieza por
// codePrefix y fabricados en el mes indicado.
func (r *BatchRepo) CountByCodePrefix(ctx context.Context, codePrefix string, year int, month time.Month) (int, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	query := `
		SELECT count(*) FROM batches
		WHERE starts_with(batch_code, $1) AND manufacture_date >= $2 AND manufacture_date < $3`
	var n int
	if err := r.q.QueryRow(ctx, query, codePrefix, from, to).Scan(&n); err != nil {
		return 0, storageErr("count batches by code prefix", err)
	}
	return n, nil
}

// ListAvailable lotes de producto+empresa con unidades > 0, del más antiguo al más reciente.
func (r *BatchRepo) ListAvailable(ctx context.Context, productName, companyID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches b
		WHERE b.product_name = $1 AND b.company_id = $2 AND b.units_remaining > 0
		ORDER BY b.manufacture_date ASC, b.batch_code ASC`
	rows, err := r.q.Query(ctx, query, productName, companyID)
	if err != nil {
		return nil, storageErr("list available batches", err)
	}
	defer rows.Close()

	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(batchDest(&b)...); err != nil {
			return nil, storageErr("scan batch", err)
		}
		list = append(list, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list available batches", err)
	}
	return list, nil
}

// List inventario con datos de la empresa; filtros opcionales.
func (r *BatchRepo) List(ctx context.Context, f repository.BatchFilter) ([]*entity.BatchWithCompany, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		where = append(where, fmt.Sprintf("(b.product_name ILIKE $%d OR b.batch_code ILIKE $%d)", len(args), len(args)))
	}
	if f.CompanyID != "" {
		add("b.company_id = $%d", f.CompanyID)
	}
	if !f.IncludeEmpty {
		where = append(where, "b.units_remaining > 0")
	}

	query := `SELECT ` + batchColumns + `, c.name, c.address, c.gst_number
		FROM batches b JOIN companies c ON c.id = b.company_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY b.product_name, b.manufacture_date, b.batch_code"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list batches", err)
	}
	defer rows.Close()

	var list []*entity.BatchWithCompany
	for rows.Next() {
		var bc entity.BatchWithCompany
		dest := append(batchDest(&bc.Batch), &bc.CompanyName, &bc.CompanyAddress, &bc.CompanyGST)
		if err := rows.Scan(dest...); err != nil {
			return nil, storageErr("scan batch", err)
		}
		list = append(list, &bc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list batches", err)
	}
	return list, nil
}

// ProductNames nombres distintos con stock para una empresa, ordenados.
func (r *BatchRepo) ProductNames(ctx context.Context, companyID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT product_name FROM batches
		WHERE company_id = $1 AND units_remaining > 0
		ORDER BY product_name`, companyID)
	if err != nil {
		return nil, storageErr("list product names", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, storageErr("scan product name", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list product names", err)
	}
	return out, nil
}

// CountByProductName cuenta lotes (incluidos los archivados) de un producto.
func (r *BatchRepo) CountByProductName(ctx context.Context, productName string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM batches WHERE product_name = $1`, productName).Scan(&n); err != nil {
		return 0, storageErr("count batches by product", err)
	}
	return n, nil
}

// CountByCompany cuenta lotes de una empresa.
func (r *BatchRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM batches WHERE company_id = $1`, companyID).Scan(&n); err != nil {
		return 0, storageErr("count batches by company", err)
	}
	return n, nil
}

// UpdateUnits fija unidades restantes y marca de archivo.
func (r *BatchRepo) UpdateUnits(ctx context.Context, id string, unitsRemaining int, archivedAt *time.Time, now time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE batches SET units_remaining = $2, archived_at = $3, updated_at = $4 WHERE id = $1`,
		id, unitsRemaining, archivedAt, now,
	)
	if err != nil {
		return storageErr("update batch units", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RewritePrefix reemplaza el prefijo al inicio de cada código del producto.
func (r *BatchRepo) RewritePrefix(ctx context.Context, productName, oldPrefix, newPrefix string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE batches
		SET batch_code = $3 || substr(batch_code, char_length($2) + 1), updated_at = now()
		WHERE product_name = $1 AND starts_with(batch_code, $2)`,
		productName, oldPrefix, newPrefix,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: el nuevo prefijo genera códigos de lote repetidos", domain.ErrConflict)
		}
		return 0, storageErr("rewrite batch codes", err)
	}
	return tag.RowsAffected(), nil
}

// Delete elimina un lote (corrección manual).
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete batch", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
