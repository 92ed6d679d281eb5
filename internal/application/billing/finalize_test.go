package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-lotes/internal/application/billing"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/infrastructure/memory"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

func allBills(t *testing.T, store *memory.Store) int {
	t.Helper()
	list, err := store.Bills().ListByDate(context.Background(), time.Time{}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return len(list)
}

// ─────────────────────────────────────────────────────────────────────────────
// Finalización
// ─────────────────────────────────────────────────────────────────────────────

func TestFinalize_DescuentaArchivaYNumera(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	acme := newCompany(t, store, "Acme")
	b1 := newBatch(t, store, acme.ID, "P50124-1", 5, "10")
	b2 := newBatch(t, store, acme.ID, "P50124-2", 10, "10")

	acc := billing.NewAccumulator(taxRate)
	acc.Add(planFor(b1, 5))
	acc.Add(planFor(b2, 3))

	uc := billing.NewFinalizeUseCase(store, logger.Nop())
	res, err := uc.Finalize(ctx, billing.BillHeader{CustomerName: "  Ravi  ", CustomerMobile: "9876543210"}, acc)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Number)
	assert.Equal(t, "Ravi", res.BillData.CustomerName)
	assert.True(t, dec("94.40").Equal(res.BillData.Total))
	assert.NotEmpty(t, res.BillData.TotalInWords)
	assert.False(t, res.BillData.Draft())
	assert.Equal(t, 2, acc.Len(), "limpiar el acumulador le toca al llamador")

	got, err := store.Batches().GetByID(ctx, b1.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UnitsRemaining)
	assert.NotNil(t, got.ArchivedAt, "el lote vacío queda archivado")
	got, err = store.Batches().GetByID(ctx, b2.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.UnitsRemaining)
	assert.Nil(t, got.ArchivedAt)

	hist, err := store.History().ListByEmptiedDate(ctx, time.Time{}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, b1.ID, hist[0].BatchID)
	assert.Equal(t, "Acme", hist[0].CompanyName)
	assert.Equal(t, 5, hist[0].InitialUnits)

	bill, err := store.Bills().GetByID(ctx, res.BillID)
	require.NoError(t, err)
	require.Len(t, bill.LineItems, 2)
	assert.Equal(t, 8, bill.ItemCount())

	// la siguiente factura toma el siguiente número
	acc2 := billing.NewAccumulator(taxRate)
	acc2.Add(planFor(b2, 1))
	res2, err := uc.Finalize(ctx, billing.BillHeader{CustomerName: "Asha"}, acc2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res2.Number)
}

func TestFinalize_StockCambiadoRevierteTodo(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	acme := newCompany(t, store, "Acme")
	b1 := newBatch(t, store, acme.ID, "P50124-1", 5, "10")
	b2 := newBatch(t, store, acme.ID, "P50124-2", 5, "10")

	acc := billing.NewAccumulator(taxRate)
	acc.Add(planFor(b1, 5))
	acc.Add(planFor(b2, 4))

	// otra factura se llevó parte del segundo lote
	require.NoError(t, store.Batches().UpdateUnits(ctx, b2.ID, 2, nil, time.Now()))

	_, err := billing.NewFinalizeUseCase(store, logger.Nop()).Finalize(ctx, billing.BillHeader{CustomerName: "Ravi"}, acc)
	var cm *domain.ConcurrentModificationError
	require.ErrorAs(t, err, &cm)
	assert.Equal(t, b2.ID, cm.BatchID)
	assert.Equal(t, 4, cm.Requested)
	assert.Equal(t, 2, cm.Remaining)

	got, err := store.Batches().GetByID(ctx, b1.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.UnitsRemaining, "el primer lote no se descuenta")
	assert.Nil(t, got.ArchivedAt)
	assert.Equal(t, 0, allBills(t, store))
	assert.Equal(t, 2, acc.Len(), "la factura en curso se conserva para corregirla")
}

func TestFinalize_LoteBorrado(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	acme := newCompany(t, store, "Acme")
	b := newBatch(t, store, acme.ID, "P50124-1", 5, "10")
	acc := billing.NewAccumulator(taxRate)
	acc.Add(planFor(b, 1))
	require.NoError(t, store.Batches().Delete(ctx, b.ID))

	_, err := billing.NewFinalizeUseCase(store, logger.Nop()).Finalize(ctx, billing.BillHeader{CustomerName: "Ravi"}, acc)
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
}

func TestFinalize_Validaciones(t *testing.T) {
	store := memory.New()
	acme := newCompany(t, store, "Acme")
	b := newBatch(t, store, acme.ID, "P50124-1", 5, "10")
	uc := billing.NewFinalizeUseCase(store, logger.Nop())

	_, err := uc.Finalize(context.Background(), billing.BillHeader{CustomerName: "Ravi"}, billing.NewAccumulator(taxRate))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)

	acc := billing.NewAccumulator(taxRate)
	acc.Add(planFor(b, 1))
	_, err = uc.Finalize(context.Background(), billing.BillHeader{CustomerName: "   "}, acc)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "customer_name", verr.Field)
	assert.Equal(t, 0, allBills(t, store))
}

func TestFinalize_FallaElCommit(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	acme := newCompany(t, store, "Acme")
	b := newBatch(t, store, acme.ID, "P50124-1", 5, "10")
	acc := billing.NewAccumulator(taxRate)
	acc.Add(planFor(b, 5))
	store.FailNextCommit(&domain.StorageError{Op: "commit", Err: errors.New("connection reset")})

	_, err := billing.NewFinalizeUseCase(store, logger.Nop()).Finalize(ctx, billing.BillHeader{CustomerName: "Ravi"}, acc)
	assert.ErrorIs(t, err, domain.ErrStorage)

	got, err := store.Batches().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.UnitsRemaining)
	assert.Equal(t, 0, allBills(t, store))
	hist, err := store.History().ListByEmptiedDate(ctx, time.Time{}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, hist)
}
