package inventory

import (
	"sort"

	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PlanEntry unidades tomadas de un lote.
type PlanEntry struct {
	BatchID   string
	BatchCode string
	HSNCode   string
	Units     int
	UnitRate  decimal.Decimal
}

// AllocationPlan resultado de una asignación: lotes en el orden en que se consumen.
// No modifica stock; el descuento ocurre al finalizar la factura.
type AllocationPlan struct {
	ProductName string
	CompanyID   string
	Requested   int
	Entries     []PlanEntry
}

// TotalUnits suma de unidades del plan (igual a Requested cuando el plan es válido).
func (p *AllocationPlan) TotalUnits() int {
	n := 0
	for _, e := range p.Entries {
		n += e.Units
	}
	return n
}

// SortFIFO ordena por fecha de fabricación ascendente y, en empate, por código ascendente.
func SortFIFO(batches []*entity.Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		if !a.ManufactureDate.Equal(b.ManufactureDate) {
			return a.ManufactureDate.Before(b.ManufactureDate)
		}
		return a.BatchCode < b.BatchCode
	})
}

// ValidateQuantity rechaza cantidades no positivas.
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	return nil
}

// PlanAllocation recorre los lotes del más antiguo al más reciente tomando
// min(restantes, pendiente) de cada uno. Si el stock total no alcanza devuelve
// *domain.OutOfStockError con el disponible y ningún plan parcial.
func PlanAllocation(productName, companyID string, quantity int, batches []*entity.Batch) (*AllocationPlan, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	avail := make([]*entity.Batch, 0, len(batches))
	total := 0
	for _, b := range batches {
		if b == nil || !b.Available() {
			continue
		}
		avail = append(avail, b)
		total += b.UnitsRemaining
	}
	if total < quantity {
		return nil, &domain.OutOfStockError{
			ProductName: productName,
			CompanyID:   companyID,
			Requested:   quantity,
			Available:   total,
		}
	}
	SortFIFO(avail)

	plan := &AllocationPlan{ProductName: productName, CompanyID: companyID, Requested: quantity}
	need := quantity
	for _, b := range avail {
		if need == 0 {
			break
		}
		take := min(b.UnitsRemaining, need)
		plan.Entries = append(plan.Entries, PlanEntry{
			BatchID:   b.ID,
			BatchCode: b.BatchCode,
			HSNCode:   b.HSNCode,
			Units:     take,
			UnitRate:  b.UnitRate,
		})
		need -= take
	}
	return plan, nil
}
