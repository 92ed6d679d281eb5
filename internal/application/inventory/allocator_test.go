package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/application/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// Asignación FIFO
// ─────────────────────────────────────────────────────────────────────────────

func TestAllocate_FIFOEntreLotes(t *testing.T) {
	f := newFixture(t)
	acme := f.company(t, "Acme")
	nuevo := f.receiveBatch(t, "Paracetamol 500mg", acme.ID, date(2024, 3, 1), 10)
	viejo := f.receiveBatch(t, "Paracetamol 500mg", acme.ID, date(2024, 1, 1), 5)

	plan, err := f.allocator.Allocate(context.Background(), "Paracetamol 500mg", acme.ID, 8)
	require.NoError(t, err)
	require.Len(t, plan.Entries, 2)
	assert.Equal(t, viejo.ID, plan.Entries[0].BatchID)
	assert.Equal(t, 5, plan.Entries[0].Units)
	assert.Equal(t, nuevo.ID, plan.Entries[1].BatchID)
	assert.Equal(t, 3, plan.Entries[1].Units)
	assert.Equal(t, 8, plan.TotalUnits())

	// solo lectura: el stock no cambia
	b, err := f.receive.Get(context.Background(), viejo.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, b.UnitsRemaining)
}

func TestAllocate_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	acme := f.company(t, "Acme")
	f.receiveBatch(t, "Paracetamol 500mg", acme.ID, date(2024, 1, 1), 5)
	f.receiveBatch(t, "Paracetamol 500mg", acme.ID, date(2024, 2, 1), 5)

	plan, err := f.allocator.Allocate(context.Background(), "Paracetamol 500mg", acme.ID, 11)
	assert.Nil(t, plan)
	var oos *domain.OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, 11, oos.Requested)
	assert.Equal(t, 10, oos.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestAllocate_CantidadNoPositiva(t *testing.T) {
	f := newFixture(t)
	for _, qty := range []int{0, -3} {
		_, err := f.allocator.Allocate(context.Background(), "Paracetamol 500mg", "x", qty)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr, "cantidad %d", qty)
	}
}

func TestAllocate_SoloLaEmpresaPedida(t *testing.T) {
	f := newFixture(t)
	acme := f.company(t, "Acme")
	beta := f.company(t, "Beta")
	f.receiveBatch(t, "Cough Syrup", beta.ID, date(2024, 1, 1), 50)
	f.receiveBatch(t, "Cough Syrup", acme.ID, date(2024, 2, 1), 2)

	_, err := f.allocator.Allocate(context.Background(), "Cough Syrup", acme.ID, 3)
	var oos *domain.OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, 2, oos.Available)
}

func TestAllocateReserved_DescuentaLoYaTomado(t *testing.T) {
	f := newFixture(t)
	acme := f.company(t, "Acme")
	viejo := f.receiveBatch(t, "Cough Syrup", acme.ID, date(2024, 1, 1), 4)
	nuevo := f.receiveBatch(t, "Cough Syrup", acme.ID, date(2024, 2, 1), 4)
	ctx := context.Background()

	plan, err := f.allocator.AllocateReserved(ctx, "Cough Syrup", acme.ID, 3, map[string]int{viejo.ID: 3})
	require.NoError(t, err)
	require.Len(t, plan.Entries, 2)
	assert.Equal(t, viejo.ID, plan.Entries[0].BatchID)
	assert.Equal(t, 1, plan.Entries[0].Units)
	assert.Equal(t, nuevo.ID, plan.Entries[1].BatchID)
	assert.Equal(t, 2, plan.Entries[1].Units)

	_, err = f.allocator.AllocateReserved(ctx, "Cough Syrup", acme.ID, 2, map[string]int{viejo.ID: 4, nuevo.ID: 3})
	var oos *domain.OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, 1, oos.Available)
}

// ─────────────────────────────────────────────────────────────────────────────
// Historial de lotes vaciados
// ─────────────────────────────────────────────────────────────────────────────

func TestHistoryReport_RangoYFormato(t *testing.T) {
	f := newFixture(t)
	acme := f.company(t, "Acme")
	b := f.receiveBatch(t, "Cough Syrup", acme.ID, date(2024, 1, 1), 4)
	ctx := context.Background()
	emptied := time.Date(2024, 6, 10, 15, 30, 0, 0, time.Local)

	require.NoError(t, f.store.History().Create(ctx, &entity.BatchHistory{
		ID: "h1", BatchID: b.ID, ProductName: b.ProductName, BatchCode: b.BatchCode,
		CompanyName: "Acme", InitialUnits: 4,
		ManufactureDate: b.ManufactureDate, ExpiryDate: b.ExpiryDate,
		EmptiedDate: emptied, CreatedAt: emptied,
	}))

	uc := inventory.NewHistoryReportUseCase(f.store.History())

	list, err := uc.Report(ctx, dto.DateRangeQuery{From: "2024-06-10", To: "2024-06-10"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "CS0124-1", list[0].BatchCode)
	assert.Equal(t, "2024-01-01", list[0].ManufactureDate)
	assert.Equal(t, "2026-01-01", list[0].ExpiryDate)

	list, err = uc.Report(ctx, dto.DateRangeQuery{From: "2024-06-11", To: "2024-06-30"})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.Report(ctx, dto.DateRangeQuery{From: "10/06/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
