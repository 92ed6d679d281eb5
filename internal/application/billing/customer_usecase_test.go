package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-lotes/internal/application/billing"
	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/infrastructure/memory"
)

func ptr(s string) *string { return &s }

func TestCustomerUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := billing.NewCustomerUseCase(memory.New().Customers())

	c, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: " Ravi Kumar ", Mobile: "9876543210", Address: "MG Road"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", c.Name)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Otro", Mobile: "9876543210"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Sin móvil", Mobile: "abc"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "mobile", verr.Field)

	list, err := uc.List(ctx, "ravi")
	require.NoError(t, err)
	require.Len(t, list, 1)

	up, err := uc.Update(ctx, c.ID, dto.UpdateCustomerRequest{Address: ptr("Brigade Road")})
	require.NoError(t, err)
	assert.Equal(t, "Brigade Road", up.Address)
	assert.Equal(t, "9876543210", up.Mobile)

	require.NoError(t, uc.Delete(ctx, c.ID))
	_, err = uc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, c.ID, dto.UpdateCustomerRequest{Name: ptr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
