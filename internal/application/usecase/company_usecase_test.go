package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/application/usecase"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/infrastructure/memory"
)

func ptr(s string) *string { return &s }

// ─────────────────────────────────────────────────────────────────────────────
// Empresas
// ─────────────────────────────────────────────────────────────────────────────

func TestCompanyUseCase_CreateYDuplicado(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := usecase.NewCompanyUseCase(store.Companies(), store.Batches())

	c, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: " Acme Pharma ", GSTNumber: "27AAPFU0939F1ZV"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Pharma", c.Name)
	assert.NotEmpty(t, c.ID)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Acme Pharma", GSTNumber: "29ABCDE1234F1Z5"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "27AAPFU0939F1ZV", got.GSTNumber)
}

func TestCompanyUseCase_GSTINInvalido(t *testing.T) {
	uc := usecase.NewCompanyUseCase(memory.New().Companies(), nil)
	for _, gst := range []string{"", "123", "27AAPFU0939F1XV"} {
		_, err := uc.Create(context.Background(), dto.CreateCompanyRequest{Name: "Acme", GSTNumber: gst})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, "gst %q", gst)
		assert.Equal(t, "gst_number", verr.Field)
	}
}

func TestCompanyUseCase_UpdateYList(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := usecase.NewCompanyUseCase(store.Companies(), store.Batches())
	c, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Beta", GSTNumber: "27AAPFU0939F1ZV"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Acme", GSTNumber: "29ABCDE1234F1Z5"})
	require.NoError(t, err)

	up, err := uc.Update(ctx, c.ID, dto.UpdateCompanyRequest{Address: ptr("Pune")})
	require.NoError(t, err)
	assert.Equal(t, "Pune", up.Address)
	assert.Equal(t, "Beta", up.Name)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme", list[0].Name)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateCompanyRequest{Name: ptr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyUseCase_DeleteConLotes(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := usecase.NewCompanyUseCase(store.Companies(), store.Batches())
	c, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Acme", GSTNumber: "27AAPFU0939F1ZV"})
	require.NoError(t, err)

	b := &entity.Batch{
		ID: uuid.New().String(), ProductName: "Cough Syrup", CompanyID: c.ID, BatchCode: "CS0124-1",
		ManufactureDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), InitialUnits: 1, UnitsRemaining: 1,
		UnitRate: decimal.NewFromInt(10),
	}
	require.NoError(t, store.Batches().Create(ctx, b))

	assert.ErrorIs(t, uc.Delete(ctx, c.ID), domain.ErrConflict)

	require.NoError(t, store.Batches().Delete(ctx, b.ID))
	require.NoError(t, uc.Delete(ctx, c.ID))
	_, err = uc.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
