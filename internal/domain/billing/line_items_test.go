package billing_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/billing"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(batchID string, qty int, rate string) entity.LineItem {
	r := decimal.RequireFromString(rate)
	return entity.LineItem{
		BatchID:     batchID,
		BatchCode:   "P50124-1",
		ProductName: "Paracetamol 500mg",
		HSNCode:     "3004",
		Quantity:    qty,
		UnitRate:    r,
		LineTotal:   billing.LineTotal(qty, r),
	}
}

func TestLineItems_CodificarYDecodificar(t *testing.T) {
	items := []entity.LineItem{item("a", 10, "2.50"), item("b", 5, "3.10")}

	raw, err := billing.EncodeLineItems(items)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"version":1`)

	got, err := billing.DecodeLineItems(raw)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].BatchID)
	assert.True(t, got[1].LineTotal.Equal(decimal.RequireFromString("15.50")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Datos guardados que no cumplen el esquema => CorruptDataError
// ──────────────────────────────────────────────────────────────────────────────

func TestDecodeLineItems_Corrupto(t *testing.T) {
	cases := map[string]string{
		"no es json":          `[('a', 1)]`,
		"versión":             `{"version":2,"items":[]}`,
		"sin líneas":          `{"version":1,"items":[]}`,
		"campo desconocido":   `{"version":1,"items":[{"batch_id":"a","product_name":"p","quantity":1,"unit_rate":"1","line_total":"1","extra":1}]}`,
		"cantidad negativa":   `{"version":1,"items":[{"batch_id":"a","product_name":"p","quantity":-1,"unit_rate":"1","line_total":"-1"}]}`,
		"total inconsistente": `{"version":1,"items":[{"batch_id":"a","product_name":"p","quantity":2,"unit_rate":"1","line_total":"5"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := billing.DecodeLineItems([]byte(raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCorruptData)
			var cde *domain.CorruptDataError
			assert.True(t, errors.As(err, &cde))
		})
	}
}

func TestEncodeLineItems_RechazaVacio(t *testing.T) {
	_, err := billing.EncodeLineItems(nil)
	assert.Error(t, err)
}
