package billing

import (
	"fmt"

	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/billing"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// Accumulator líneas de la factura en composición. No persiste nada y no es seguro para
// uso concurrente: el llamador (BillSession) serializa el acceso.
type Accumulator struct {
	taxRate decimal.Decimal
	items   []entity.LineItem
	byBatch map[string]int // batch_id -> índice en items
}

// NewAccumulator crea un acumulador vacío con la tasa plana de impuesto.
func NewAccumulator(taxRate decimal.Decimal) *Accumulator {
	return &Accumulator{taxRate: taxRate, byBatch: map[string]int{}}
}

// Add incorpora las entradas del plan. Una entrada de un lote que ya está en la factura
// suma unidades a esa línea; si no, se agrega una línea nueva al final con el HSN de su lote.
func (a *Accumulator) Add(plan *inventory.AllocationPlan) {
	for _, e := range plan.Entries {
		if i, ok := a.byBatch[e.BatchID]; ok {
			li := &a.items[i]
			li.Quantity += e.Units
			li.LineTotal = billing.LineTotal(li.Quantity, li.UnitRate)
			continue
		}
		a.byBatch[e.BatchID] = len(a.items)
		a.items = append(a.items, entity.LineItem{
			BatchID:     e.BatchID,
			BatchCode:   e.BatchCode,
			ProductName: plan.ProductName,
			HSNCode:     e.HSNCode,
			Quantity:    e.Units,
			UnitRate:    e.UnitRate,
			LineTotal:   billing.LineTotal(e.Units, e.UnitRate),
		})
	}
}

// Remove elimina la línea index (base 0).
func (a *Accumulator) Remove(index int) error {
	if index < 0 || index >= len(a.items) {
		return fmt.Errorf("%w: línea %d de %d", domain.ErrIndexOutOfRange, index, len(a.items))
	}
	a.items = append(a.items[:index], a.items[index+1:]...)
	a.reindex()
	return nil
}

func (a *Accumulator) reindex() {
	clear(a.byBatch)
	for i, li := range a.items {
		a.byBatch[li.BatchID] = i
	}
}

// Totals subtotal, impuesto y total de las líneas actuales.
func (a *Accumulator) Totals() billing.Totals {
	return billing.ComputeTotals(a.items, a.taxRate)
}

// Clear vacía el acumulador (tras finalizar o cancelar).
func (a *Accumulator) Clear() {
	a.items = nil
	clear(a.byBatch)
}

// Items copia de las líneas en orden de inserción.
func (a *Accumulator) Items() []entity.LineItem {
	out := make([]entity.LineItem, len(a.items))
	copy(out, a.items)
	return out
}

// Len cantidad de líneas.
func (a *Accumulator) Len() int { return len(a.items) }

// Quantities unidades acumuladas por lote (para validar asignaciones nuevas contra lo ya tomado).
func (a *Accumulator) Quantities() map[string]int {
	out := make(map[string]int, len(a.items))
	for _, li := range a.items {
		out[li.BatchID] = li.Quantity
	}
	return out
}

// TaxRate tasa aplicada por Totals.
func (a *Accumulator) TaxRate() decimal.Decimal { return a.taxRate }
