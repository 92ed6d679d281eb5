package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/billing"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ── Empresas ──────────────────────────────────────────────────────────────────

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ v view }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.v.do(func(st *state) error {
		for _, o := range st.companies {
			if o.Name == c.Name || o.GSTNumber == c.GSTNumber {
				return fmt.Errorf("%w: empresa con el mismo nombre o GST", domain.ErrDuplicate)
			}
		}
		st.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.do(func(st *state) error {
		if c, ok := st.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) GetByName(_ context.Context, name string) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.do(func(st *state) error {
		for _, c := range st.companies {
			if c.Name == name {
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) List(_ context.Context) ([]*entity.Company, error) {
	var out []*entity.Company
	err := r.v.do(func(st *state) error {
		for _, c := range st.companies {
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.companies[c.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.companies {
			if o.ID != c.ID && (o.Name == c.Name || o.GSTNumber == c.GSTNumber) {
				return fmt.Errorf("%w: empresa con el mismo nombre o GST", domain.ErrDuplicate)
			}
		}
		st.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.companies[id]; !ok {
			return domain.ErrNotFound
		}
		for _, b := range st.batches {
			if b.CompanyID == id {
				return fmt.Errorf("%w: la empresa tiene lotes registrados", domain.ErrConflict)
			}
		}
		delete(st.companies, id)
		return nil
	})
}

// ── Clientes ──────────────────────────────────────────────────────────────────

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ v view }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.v.do(func(st *state) error {
		for _, o := range st.customers {
			if o.Mobile == c.Mobile {
				return fmt.Errorf("%w: ya existe un cliente con ese móvil", domain.ErrDuplicate)
			}
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.do(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) GetByMobile(_ context.Context, mobile string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.do(func(st *state) error {
		for _, c := range st.customers {
			if c.Mobile == mobile {
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) List(_ context.Context, search string) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.v.do(func(st *state) error {
		for _, c := range st.customers {
			if search == "" || containsFold(c.Name, search) || containsFold(c.Mobile, search) {
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.customers[c.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.customers {
			if o.ID != c.ID && o.Mobile == c.Mobile {
				return fmt.Errorf("%w: ya existe un cliente con ese móvil", domain.ErrDuplicate)
			}
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.customers[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.customers, id)
		return nil
	})
}

// ── Identificadores ───────────────────────────────────────────────────────────

var _ repository.IdentifierRepository = (*IdentifierRepo)(nil)

// IdentifierRepo registro de prefijos en memoria.
type IdentifierRepo struct{ v view }

func (r *IdentifierRepo) find(match func(entity.ProductIdentifier) bool) (*entity.ProductIdentifier, error) {
	var out *entity.ProductIdentifier
	err := r.v.do(func(st *state) error {
		for _, p := range st.identifiers {
			if match(p) {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *IdentifierRepo) GetByID(_ context.Context, id string) (*entity.ProductIdentifier, error) {
	return r.find(func(p entity.ProductIdentifier) bool { return p.ID == id })
}

func (r *IdentifierRepo) GetByProductName(_ context.Context, name string) (*entity.ProductIdentifier, error) {
	return r.find(func(p entity.ProductIdentifier) bool { return p.ProductName == name })
}

func (r *IdentifierRepo) GetByPrefix(_ context.Context, prefix string) (*entity.ProductIdentifier, error) {
	return r.find(func(p entity.ProductIdentifier) bool { return p.Prefix == prefix })
}

func (r *IdentifierRepo) ListPrefixes(_ context.Context) ([]string, error) {
	var out []string
	err := r.v.do(func(st *state) error {
		for _, p := range st.identifiers {
			out = append(out, p.Prefix)
		}
		return nil
	})
	return out, err
}

func (r *IdentifierRepo) List(_ context.Context, search string) ([]*entity.ProductIdentifier, error) {
	var out []*entity.ProductIdentifier
	err := r.v.do(func(st *state) error {
		for _, p := range st.identifiers {
			if search == "" || containsFold(p.ProductName, search) || containsFold(p.Prefix, search) {
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, err
}

func (r *IdentifierRepo) Create(_ context.Context, p *entity.ProductIdentifier) error {
	return r.v.do(func(st *state) error {
		for _, o := range st.identifiers {
			if o.ProductName == p.ProductName || o.Prefix == p.Prefix {
				return fmt.Errorf("%w: prefijo %q o producto %q ya registrado", domain.ErrConflict, p.Prefix, p.ProductName)
			}
		}
		st.identifiers[p.ID] = *p
		return nil
	})
}

func (r *IdentifierRepo) UpdatePrefix(_ context.Context, p *entity.ProductIdentifier) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.identifiers[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.identifiers {
			if o.ID != p.ID && o.Prefix == p.Prefix {
				return fmt.Errorf("%w: el prefijo %q pertenece a otro producto", domain.ErrConflict, p.Prefix)
			}
		}
		cur.Prefix = p.Prefix
		cur.UpdatedAt = p.UpdatedAt
		st.identifiers[p.ID] = cur
		return nil
	})
}

func (r *IdentifierRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.identifiers[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.identifiers, id)
		return nil
	})
}

// ── Lotes ─────────────────────────────────────────────────────────────────────

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo lotes en memoria.
type BatchRepo struct{ v view }

func (r *BatchRepo) Create(_ context.Context, b *entity.Batch) error {
	return r.v.do(func(st *state) error {
		for _, o := range st.batches {
			if o.BatchCode == b.BatchCode {
				return fmt.Errorf("%w: el código de lote %q ya existe", domain.ErrConflict, b.BatchCode)
			}
		}
		if _, ok := st.companies[b.CompanyID]; !ok {
			return &domain.StorageError{Op: "insert batch", Err: fmt.Errorf("empresa %s inexistente", b.CompanyID)}
		}
		st.batches[b.ID] = *b
		return nil
	})
}

func (r *BatchRepo) get(match func(entity.Batch) bool) (*entity.Batch, error) {
	var out *entity.Batch
	err := r.v.do(func(st *state) error {
		for _, b := range st.batches {
			if match(b) {
				out = &b
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *BatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	return r.get(func(b entity.Batch) bool { return b.ID == id })
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya tiene el almacén en exclusiva.
func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return r.GetByID(ctx, id)
}

func (r *BatchRepo) GetByCode(_ context.Context, code string) (*entity.Batch, error) {
	return r.get(func(b entity.Batch) bool { return b.BatchCode == code })
}

func (r *BatchRepo) CountByCodePrefix(_ context.Context, codePrefix string, year int, month time.Month) (int, error) {
	n := 0
	err := r.v.do(func(st *state) error {
		for _, b := range st.batches {
			if strings.HasPrefix(b.BatchCode, codePrefix) &&
				b.ManufactureDate.Year() == year && b.ManufactureDate.Month() == month {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *BatchRepo) ListAvailable(_ context.Context, productName, companyID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	err := r.v.do(func(st *state) error {
		for _, b := range st.batches {
			if b.ProductName == productName && b.CompanyID == companyID && b.UnitsRemaining > 0 {
				out = append(out, &b)
			}
		}
		return nil
	})
	inventory.SortFIFO(out)
	return out, err
}

func (r *BatchRepo) List(_ context.Context, f repository.BatchFilter) ([]*entity.BatchWithCompany, error) {
	var out []*entity.BatchWithCompany
	err := r.v.do(func(st *state) error {
		for _, b := range st.batches {
			if f.Search != "" && !containsFold(b.ProductName, f.Search) && !containsFold(b.BatchCode, f.Search) {
				continue
			}
			if f.CompanyID != "" && b.CompanyID != f.CompanyID {
				continue
			}
			if !f.IncludeEmpty && b.UnitsRemaining == 0 {
				continue
			}
			c := st.companies[b.CompanyID]
			out = append(out, &entity.BatchWithCompany{
				Batch:          b,
				CompanyName:    c.Name,
				CompanyAddress: c.Address,
				CompanyGST:     c.GSTNumber,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ProductName != b.ProductName {
			return a.ProductName < b.ProductName
		}
		if !a.ManufactureDate.Equal(b.ManufactureDate) {
			return a.ManufactureDate.Before(b.ManufactureDate)
		}
		return a.BatchCode < b.BatchCode
	})
	return out, err
}

func (r *BatchRepo) ProductNames(_ context.Context, companyID string) ([]string, error) {
	var out []string
	err := r.v.do(func(st *state) error {
		for _, b := range st.batches {
			if b.CompanyID == companyID && b.UnitsRemaining > 0 && !slices.Contains(out, b.ProductName) {
				out = append(out, b.ProductName)
			}
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}

func (r *BatchRepo) count(match func(entity.Batch) bool) (int, error) {
	n := 0
	err := r.v.do(func(st *state) error {
		for _, b := range st.batches {
			if match(b) {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *BatchRepo) CountByProductName(_ context.Context, productName string) (int, error) {
	return r.count(func(b entity.Batch) bool { return b.ProductName == productName })
}

func (r *BatchRepo) CountByCompany(_ context.Context, companyID string) (int, error) {
	return r.count(func(b entity.Batch) bool { return b.CompanyID == companyID })
}

func (r *BatchRepo) UpdateUnits(_ context.Context, id string, units int, archivedAt *time.Time, now time.Time) error {
	return r.v.do(func(st *state) error {
		b, ok := st.batches[id]
		if !ok {
			return domain.ErrNotFound
		}
		if units < 0 || units > b.InitialUnits {
			return &domain.StorageError{Op: "update batch units", Err: fmt.Errorf("unidades fuera de rango: %d", units)}
		}
		b.UnitsRemaining = units
		b.ArchivedAt = archivedAt
		b.UpdatedAt = now
		st.batches[id] = b
		return nil
	})
}

func (r *BatchRepo) RewritePrefix(_ context.Context, productName, oldPrefix, newPrefix string) (int64, error) {
	var n int64
	err := r.v.do(func(st *state) error {
		codes := make(map[string]string) // id -> código nuevo
		for id, b := range st.batches {
			if b.ProductName == productName && strings.HasPrefix(b.BatchCode, oldPrefix) {
				codes[id] = inventory.RewriteCodePrefix(b.BatchCode, oldPrefix, newPrefix)
			}
		}
		for id, b := range st.batches {
			if _, rewriting := codes[id]; rewriting {
				continue
			}
			for _, code := range codes {
				if b.BatchCode == code {
					return fmt.Errorf("%w: el nuevo prefijo genera códigos de lote repetidos", domain.ErrConflict)
				}
			}
		}
		now := time.Now()
		for id, code := range codes {
			b := st.batches[id]
			b.BatchCode = code
			b.UpdatedAt = now
			st.batches[id] = b
		}
		n = int64(len(codes))
		return nil
	})
	return n, err
}

func (r *BatchRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.batches[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.batches, id)
		return nil
	})
}

// ── Historial ─────────────────────────────────────────────────────────────────

var _ repository.BatchHistoryRepository = (*BatchHistoryRepo)(nil)

// BatchHistoryRepo historial en memoria (solo inserción).
type BatchHistoryRepo struct{ v view }

func (r *BatchHistoryRepo) Create(_ context.Context, h *entity.BatchHistory) error {
	return r.v.do(func(st *state) error {
		st.history = append(st.history, *h)
		return nil
	})
}

func (r *BatchHistoryRepo) ListByEmptiedDate(_ context.Context, from, to time.Time) ([]*entity.BatchHistory, error) {
	var out []*entity.BatchHistory
	err := r.v.do(func(st *state) error {
		for _, h := range st.history {
			if !h.EmptiedDate.Before(from) && !h.EmptiedDate.After(to) {
				out = append(out, &h)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].EmptiedDate.After(out[j].EmptiedDate) })
	return out, err
}

// ── Facturas ──────────────────────────────────────────────────────────────────

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo facturas en memoria. Las líneas pasan por el mismo codec JSON que en PostgreSQL.
type BillRepo struct{ v view }

func (r *BillRepo) Create(_ context.Context, b *entity.Bill) error {
	if _, err := billing.EncodeLineItems(b.LineItems); err != nil {
		return err
	}
	return r.v.do(func(st *state) error {
		if _, ok := st.bills[b.ID]; ok {
			return &domain.StorageError{Op: "insert bill", Err: fmt.Errorf("id %s repetido", b.ID)}
		}
		st.billSeq++
		b.Number = st.billSeq
		stored := *b
		stored.LineItems = slices.Clone(b.LineItems)
		st.bills[b.ID] = stored
		return nil
	})
}

func (r *BillRepo) GetByID(_ context.Context, id string) (*entity.Bill, error) {
	var out *entity.Bill
	err := r.v.do(func(st *state) error {
		if b, ok := st.bills[id]; ok {
			b.LineItems = slices.Clone(b.LineItems)
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BillRepo) ListByDate(_ context.Context, from, to time.Time) ([]*entity.Bill, error) {
	var out []*entity.Bill
	err := r.v.do(func(st *state) error {
		for _, b := range st.bills {
			if !b.BillDate.Before(from) && !b.BillDate.After(to) {
				b.LineItems = slices.Clone(b.LineItems)
				out = append(out, &b)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BillDate.Equal(out[j].BillDate) {
			return out[i].BillDate.After(out[j].BillDate)
		}
		return out[i].Number > out[j].Number
	})
	return out, err
}
