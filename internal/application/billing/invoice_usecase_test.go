package billing_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-lotes/internal/application/billing"
	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/infrastructure/memory"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

// fakeRenderer guarda los datos recibidos y devuelve un PDF mínimo.
type fakeRenderer struct {
	last *billing.BillData
	err  error
}

func (r *fakeRenderer) RenderBill(_ context.Context, data *billing.BillData) ([]byte, error) {
	r.last = data
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-fake"), nil
}

// finalized crea una factura finalizada de 2 unidades a 10.
func finalized(t *testing.T, store *memory.Store) *billing.FinalizeResult {
	t.Helper()
	acme := newCompany(t, store, "Acme")
	b := newBatch(t, store, acme.ID, "P50124-1", 5, "10")
	acc := billing.NewAccumulator(taxRate)
	acc.Add(planFor(b, 2))
	res, err := billing.NewFinalizeUseCase(store, logger.Nop()).Finalize(context.Background(), billing.BillHeader{CustomerName: "Ravi"}, acc)
	require.NoError(t, err)
	return res
}

// ─────────────────────────────────────────────────────────────────────────────
// PDF de facturas
// ─────────────────────────────────────────────────────────────────────────────

func TestFileName(t *testing.T) {
	at := time.Date(2024, 6, 1, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "Bill_12_20240601_140509.pdf", billing.FileName(12, at))
}

func TestSaveBill_EscribeEnLaCarpeta(t *testing.T) {
	store := memory.New()
	res := finalized(t, store)
	dir := filepath.Join(t.TempDir(), "bills")
	r := &fakeRenderer{}
	uc := billing.NewInvoiceUseCase(store.Bills(), r, dir, taxRate, logger.Nop())

	path, err := uc.SaveBill(context.Background(), res.BillData)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "Bill_1_"))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(content))
	assert.Same(t, res.BillData, r.last)
}

func TestSaveBill_FallaElRender(t *testing.T) {
	store := memory.New()
	res := finalized(t, store)
	dir := t.TempDir()
	uc := billing.NewInvoiceUseCase(store.Bills(), &fakeRenderer{err: errors.New("font missing")}, dir, taxRate, logger.Nop())

	_, err := uc.SaveBill(context.Background(), res.BillData)
	require.Error(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReprint(t *testing.T) {
	store := memory.New()
	res := finalized(t, store)
	r := &fakeRenderer{}
	uc := billing.NewInvoiceUseCase(store.Bills(), r, t.TempDir(), taxRate, logger.Nop())

	pdf, name, err := uc.Reprint(context.Background(), res.BillID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.True(t, strings.HasPrefix(name, "Bill_1_"))
	require.NotNil(t, r.last)
	assert.Equal(t, int64(1), r.last.Number)
	require.Len(t, r.last.Items, 1)
	assert.Equal(t, "P50124-1", r.last.Items[0].BatchCode)
	assert.True(t, dec("23.60").Equal(r.last.Total))

	_, _, err = uc.Reprint(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreview_Borrador(t *testing.T) {
	store := memory.New()
	acme := newCompany(t, store, "Acme")
	b := newBatch(t, store, acme.ID, "P50124-1", 5, "10")
	r := &fakeRenderer{}
	uc := billing.NewInvoiceUseCase(store.Bills(), r, t.TempDir(), taxRate, logger.Nop())

	acc := billing.NewAccumulator(taxRate)
	_, err := uc.Preview(context.Background(), billing.BillHeader{}, acc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	acc.Add(planFor(b, 3))
	_, err = uc.Preview(context.Background(), billing.BillHeader{CustomerName: "Ravi"}, acc)
	require.NoError(t, err)
	require.NotNil(t, r.last)
	assert.True(t, r.last.Draft())
	assert.True(t, dec("30").Equal(r.last.Subtotal))
	assert.True(t, taxRate.Equal(r.last.TaxRate))

	got, err := store.Batches().GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.UnitsRemaining, "la vista previa no toca el stock")
}

// ─────────────────────────────────────────────────────────────────────────────
// Reporte de ventas
// ─────────────────────────────────────────────────────────────────────────────

func TestSalesReport(t *testing.T) {
	store := memory.New()
	finalized(t, store)
	uc := billing.NewSalesReportUseCase(store.Bills())
	today := time.Now().Format(time.DateOnly)

	rep, err := uc.Report(context.Background(), dto.DateRangeQuery{From: today, To: today})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.BillCount)
	assert.Equal(t, 2, rep.ItemCount)
	assert.True(t, dec("23.60").Equal(rep.TotalSales))
	require.Len(t, rep.Bills, 1)
	assert.Equal(t, int64(1), rep.Bills[0].Number)

	rep, err = uc.Report(context.Background(), dto.DateRangeQuery{From: "2000-01-01", To: "2000-01-31"})
	require.NoError(t, err)
	assert.Equal(t, 0, rep.BillCount)
	assert.True(t, rep.TotalSales.IsZero())

	_, err = uc.Report(context.Background(), dto.DateRangeQuery{From: today, To: "2000-01-01"})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}
