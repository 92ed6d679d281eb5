package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/infrastructure/memory"
)

var taxRate = decimal.RequireFromString("0.18")

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newCompany(t *testing.T, store *memory.Store, name string) *entity.Company {
	t.Helper()
	c := &entity.Company{ID: uuid.New().String(), Name: name, GSTNumber: "27AAPFU0939F1ZV"}
	require.NoError(t, store.Companies().Create(context.Background(), c))
	return c
}

// newBatch guarda un lote con la tarifa y unidades indicadas.
func newBatch(t *testing.T, store *memory.Store, companyID, code string, units int, rate string) *entity.Batch {
	t.Helper()
	mfg := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := &entity.Batch{
		ID:              uuid.New().String(),
		ProductName:     "Paracetamol 500mg",
		CompanyID:       companyID,
		ManufactureDate: mfg,
		ExpiryDate:      mfg.AddDate(2, 0, 0),
		BatchCode:       code,
		HSNCode:         "3004",
		InitialUnits:    units,
		UnitsRemaining:  units,
		UnitRate:        dec(rate),
		MRP:             dec(rate),
	}
	require.NoError(t, store.Batches().Create(context.Background(), b))
	return b
}

// planFor plan de una sola entrada sobre b.
func planFor(b *entity.Batch, units int) *inventory.AllocationPlan {
	return &inventory.AllocationPlan{
		ProductName: b.ProductName,
		CompanyID:   b.CompanyID,
		Requested:   units,
		Entries:     []inventory.PlanEntry{{BatchID: b.ID, BatchCode: b.BatchCode, HSNCode: b.HSNCode, Units: units, UnitRate: b.UnitRate}},
	}
}
