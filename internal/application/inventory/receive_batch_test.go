package inventory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/application/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
	"github.com/jhoicas/facturacion-lotes/internal/infrastructure/memory"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

// ─────────────────────────────────────────────────────────────────────────────
// Alta de lotes y códigos
// ─────────────────────────────────────────────────────────────────────────────

func TestReceive_CodigosPorMes(t *testing.T) {
	f := newFixture(t)
	acme := f.company(t, "Acme")

	b1 := f.receiveBatch(t, "Paracetamol 500mg", acme.ID, date(2024, 1, 5), 10)
	b2 := f.receiveBatch(t, "Paracetamol 500mg", acme.ID, date(2024, 1, 25), 10)
	b3 := f.receiveBatch(t, "Paracetamol 500mg", acme.ID, date(2024, 2, 1), 10)

	assert.Equal(t, "P50124-1", b1.BatchCode)
	assert.Equal(t, "P50124-2", b2.BatchCode)
	assert.Equal(t, "P50224-1", b3.BatchCode)
}

func TestReceive_CalculaMontos(t *testing.T) {
	f := newFixture(t)
	acme := f.company(t, "Acme")

	b := f.receiveBatch(t, "Cough Syrup", acme.ID, date(2024, 3, 1), 10)

	assert.True(t, dec("90").Equal(b.UnitRate), "MRP 100 menos 10 de descuento")
	assert.True(t, dec("900").Equal(b.TaxableAmount))
	assert.True(t, dec("54").Equal(b.CGST))
	assert.True(t, dec("54").Equal(b.SGST))
	assert.True(t, b.IGST.IsZero())
	assert.True(t, dec("1008").Equal(b.TotalAmount))
	assert.NotEmpty(t, b.AmountInWords)
	assert.Equal(t, 10, b.InitialUnits)
	assert.Equal(t, 10, b.UnitsRemaining)
}

func TestReceive_Validaciones(t *testing.T) {
	f := newFixture(t)
	acme := f.company(t, "Acme")

	tests := []struct {
		name   string
		mutate func(in *inventory.ReceiveBatchInput)
		field  string
	}{
		{"sin producto", func(in *inventory.ReceiveBatchInput) { in.ProductName = "  " }, "product_name"},
		{"sin HSN", func(in *inventory.ReceiveBatchInput) { in.HSNCode = "" }, "hsn_code"},
		{"unidades cero", func(in *inventory.ReceiveBatchInput) { in.Units = 0 }, "units"},
		{"unidades fuera de int32", func(in *inventory.ReceiveBatchInput) { in.Units = 3_000_000_000 }, "units"},
		{"mrp negativo", func(in *inventory.ReceiveBatchInput) { in.MRP = dec("-1") }, "mrp"},
		{"mrp con 3 decimales", func(in *inventory.ReceiveBatchInput) { in.MRP = dec("10.555") }, "mrp"},
		{"mrp sobre el máximo", func(in *inventory.ReceiveBatchInput) { in.MRP = dec("10000000000") }, "mrp"},
		{"descuento mayor a 100", func(in *inventory.ReceiveBatchInput) { in.DiscountPct = dec("150") }, "discount_pct"},
		{"descuento con 3 decimales", func(in *inventory.ReceiveBatchInput) { in.DiscountPct = dec("12.345") }, "discount_pct"},
		{"cgst con 3 decimales", func(in *inventory.ReceiveBatchInput) { in.CGSTPct = dec("6.125") }, "cgst_pct"},
		{"total sobre el máximo", func(in *inventory.ReceiveBatchInput) {
			in.MRP = dec("9999999999.99")
			in.DiscountPct = decimal.Zero
			in.Units = 1000
		}, "units"},
		{"vence antes de fabricarse", func(in *inventory.ReceiveBatchInput) { in.ExpiryDate = in.ManufactureDate.AddDate(0, 0, -1) }, "expiry_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := input("Cough Syrup", acme.ID, date(2024, 3, 1), 10)
			tt.mutate(&in)
			_, err := f.receive.Receive(context.Background(), in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	list, err := f.receive.List(context.Background(), dto.BatchListQuery{IncludeEmpty: true})
	require.NoError(t, err)
	assert.Empty(t, list, "ninguna validación fallida deja lotes")
	idents, err := f.ids.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, idents, "ninguna validación fallida registra prefijos")
}

func TestReceive_PorcentajesInvalidosEnOrdenFijo(t *testing.T) {
	f := newFixture(t)
	acme := f.company(t, "Acme")
	in := input("Cough Syrup", acme.ID, date(2024, 3, 1), 10)
	in.DiscountPct = dec("101")
	in.IGSTPct = dec("-1")
	in.SGSTPct = dec("200")

	for range 20 {
		_, err := f.receive.Receive(context.Background(), in)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "discount_pct", verr.Field)
	}
}

func TestReceive_NormalizaFechasYMarcasDeTiempo(t *testing.T) {
	f := newFixture(t)
	acme := f.company(t, "Acme")
	in := input("Cough Syrup", acme.ID, time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC), 10)
	in.ExpiryDate = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	in.MRP = dec("10.5")

	b, err := f.receive.Receive(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 1), b.ManufactureDate)
	assert.Equal(t, date(2026, 3, 1), b.ExpiryDate)
	assert.Equal(t, b.CreatedAt, b.CreatedAt.Truncate(time.Microsecond))
	assert.True(t, dec("10.50").Equal(b.MRP))

	got, err := f.receive.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestReceive_EmpresaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.receive.Receive(context.Background(), input("Cough Syrup", "no-existe", date(2024, 3, 1), 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// conflictingBatches falla el primer insert como si otra instancia hubiera usado el código.
type conflictingBatches struct {
	repository.BatchRepository
}

func (conflictingBatches) Create(context.Context, *entity.Batch) error {
	return fmt.Errorf("%w: código de lote repetido", domain.ErrConflict)
}

type batchRaceTx struct {
	store *memory.Store
	calls int
}

func (r *batchRaceTx) Run(ctx context.Context, fn func(repository.IdentifierRepository, repository.BatchRepository) error) error {
	r.calls++
	if r.calls > 1 {
		return r.store.Run(ctx, fn)
	}
	return r.store.Run(ctx, func(ids repository.IdentifierRepository, batches repository.BatchRepository) error {
		return fn(ids, conflictingBatches{batches})
	})
}

func TestReceive_ReintentaCodigoOcupado(t *testing.T) {
	store := memory.New()
	log := logger.Nop()
	ids := inventory.NewIdentifierUseCase(store, store.Identifiers(), log)
	tx := &batchRaceTx{store: store}
	receive := inventory.NewReceiveBatchUseCase(tx, ids, store.Companies(), store.Batches(), log)
	f := &fixture{store: store}
	acme := f.company(t, "Acme")

	b, err := receive.Receive(context.Background(), input("Cough Syrup", acme.ID, date(2024, 3, 1), 3))
	require.NoError(t, err)
	assert.Equal(t, "CS0324-1", b.BatchCode)
	assert.Equal(t, 2, tx.calls)
}

func TestReceiveFromRequest_FechaInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.receive.ReceiveFromRequest(context.Background(), dto.ReceiveBatchRequest{
		ProductName: "Cough Syrup", ManufactureDate: "01/03/2024", ExpiryDate: "2026-03-01",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "manufacture_date", verr.Field)
}

// ─────────────────────────────────────────────────────────────────────────────
// Generador de códigos
// ─────────────────────────────────────────────────────────────────────────────

func TestPreview_NoModificaEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mfg := date(2024, 1, 15)

	c1, p1, err := f.codes.Preview(ctx, "Paracetamol 500mg", mfg)
	require.NoError(t, err)
	c2, p2, err := f.codes.Preview(ctx, "Paracetamol 500mg", mfg)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
	assert.Equal(t, p1, p2)

	list, err := f.ids.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list, "la vista previa no registra prefijos")

	code, err := f.codes.Generate(ctx, "Paracetamol 500mg", mfg)
	require.NoError(t, err)
	assert.Equal(t, c1, code)
	assert.Equal(t, "P50124-1", code)
}

func TestGenerate_SaltaHuecos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := f.company(t, "Acme")

	b1 := f.receiveBatch(t, "Paracetamol 500mg", acme.ID, date(2024, 1, 1), 1)
	f.receiveBatch(t, "Paracetamol 500mg", acme.ID, date(2024, 1, 2), 1)
	require.NoError(t, f.receive.Delete(ctx, b1.ID))

	// queda 1 lote en el mes: la secuencia 2 está ocupada y se avanza a la 3
	code, err := f.codes.Generate(ctx, "Paracetamol 500mg", date(2024, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, "P50124-3", code)
}

func TestGenerate_NombreVacio(t *testing.T) {
	f := newFixture(t)
	_, err := f.codes.Generate(context.Background(), "", date(2024, 1, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// Listados
// ─────────────────────────────────────────────────────────────────────────────

func TestList_FiltrosYNombres(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := f.company(t, "Acme")
	beta := f.company(t, "Beta")
	f.receiveBatch(t, "Paracetamol 500mg", acme.ID, date(2024, 1, 1), 1)
	f.receiveBatch(t, "Cough Syrup", acme.ID, date(2024, 1, 1), 1)
	f.receiveBatch(t, "Cough Syrup", beta.ID, date(2024, 1, 1), 1)

	list, err := f.receive.List(ctx, dto.BatchListQuery{Search: "cough"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = f.receive.List(ctx, dto.BatchListQuery{CompanyID: beta.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Beta", list[0].CompanyName)

	names, err := f.receive.ProductNames(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cough Syrup", "Paracetamol 500mg"}, names)
}
