package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/domain/billing"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo facturas sobre PostgreSQL. Las líneas se guardan como JSONB con el esquema de
// billing.EncodeLineItems y se validan al leer.
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador.
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, number, customer_name, customer_mobile, customer_address, bill_date,
	subtotal, tax, total_amount, line_items, created_at`

// Create inserta la factura y completa bill.Number con el consecutivo de la secuencia.
func (r *BillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	raw, err := billing.EncodeLineItems(bill.LineItems)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO bills (id, customer_name, customer_mobile, customer_address, bill_date,
			subtotal, tax, total_amount, line_items, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING number`
	err = r.q.QueryRow(ctx, query,
		bill.ID, bill.CustomerName, bill.CustomerMobile, bill.CustomerAddress, bill.BillDate,
		bill.Subtotal, bill.Tax, bill.TotalAmount, string(raw), bill.CreatedAt,
	).Scan(&bill.Number)
	if err != nil {
		return storageErr("insert bill", err)
	}
	return nil
}

type billScanner interface{ Scan(...any) error }

func scanBill(row billScanner) (*entity.Bill, error) {
	var (
		b   entity.Bill
		raw []byte
	)
	if err := row.Scan(
		&b.ID, &b.Number, &b.CustomerName, &b.CustomerMobile, &b.CustomerAddress, &b.BillDate,
		&b.Subtotal, &b.Tax, &b.TotalAmount, &raw, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	items, err := billing.DecodeLineItems(raw)
	if err != nil {
		return nil, err
	}
	b.LineItems = items
	return &b, nil
}

// GetByID obtiene una factura con sus líneas.
func (r *BillRepo) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	row := r.q.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id)
	b, err := scanBill(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		if isCorrupt(err) {
			return nil, err
		}
		return nil, storageErr("get bill", err)
	}
	return b, nil
}

// ListByDate facturas con fecha entre from y to (inclusive), más recientes primero.
func (r *BillRepo) ListByDate(ctx context.Context, from, to time.Time) ([]*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills
		WHERE bill_date >= $1 AND bill_date <= $2
		ORDER BY bill_date DESC, number DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, storageErr("list bills", err)
	}
	defer rows.Close()

	var list []*entity.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			if isCorrupt(err) {
				return nil, err
			}
			return nil, storageErr("scan bill", err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list bills", err)
	}
	return list, nil
}
