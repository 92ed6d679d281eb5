package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-lotes/internal/application/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/infrastructure/memory"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

// fixture casos de uso de inventario sobre un almacén en memoria.
type fixture struct {
	store     *memory.Store
	ids       *inventory.IdentifierUseCase
	codes     *inventory.BatchCodeUseCase
	receive   *inventory.ReceiveBatchUseCase
	allocator *inventory.AllocatorUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	log := logger.Nop()
	ids := inventory.NewIdentifierUseCase(store, store.Identifiers(), log)
	return &fixture{
		store:     store,
		ids:       ids,
		codes:     inventory.NewBatchCodeUseCase(ids, store.Batches()),
		receive:   inventory.NewReceiveBatchUseCase(store, ids, store.Companies(), store.Batches(), log),
		allocator: inventory.NewAllocatorUseCase(store.Batches()),
	}
}

func (f *fixture) company(t *testing.T, name string) *entity.Company {
	t.Helper()
	c := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		GSTNumber: "GST-" + name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, f.store.Companies().Create(context.Background(), c))
	return c
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// input entrada válida de un lote; los tests modifican lo que necesitan.
func input(product, companyID string, mfg time.Time, units int) inventory.ReceiveBatchInput {
	return inventory.ReceiveBatchInput{
		ProductName:     product,
		CompanyID:       companyID,
		HSNCode:         "3004",
		ManufactureDate: mfg,
		ExpiryDate:      mfg.AddDate(2, 0, 0),
		Units:           units,
		MRP:             dec("100"),
		DiscountPct:     dec("10"),
		CGSTPct:         dec("6"),
		SGSTPct:         dec("6"),
	}
}

func (f *fixture) receiveBatch(t *testing.T, product, companyID string, mfg time.Time, units int) *entity.Batch {
	t.Helper()
	b, err := f.receive.Receive(context.Background(), input(product, companyID, mfg, units))
	require.NoError(t, err)
	return b
}
