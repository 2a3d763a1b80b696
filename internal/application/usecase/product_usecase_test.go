package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartpos-api/internal/application/dto"
	"github.com/jhoicas/smartpos-api/internal/application/usecase"
	"github.com/jhoicas/smartpos-api/internal/domain"
	"github.com/jhoicas/smartpos-api/internal/infrastructure/memory"
)

func TestProductUseCase(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "TEA", Name: "Masala Tea", Price: decimal.RequireFromString("149.999"), Stock: 3})
	require.NoError(t, err)
	assert.True(t, p.Active)
	assert.Equal(t, "150.00", p.Price.StringFixed(2))

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "TEA", Name: "Otro", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "X", Name: "X", Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "Y", Name: "Y", Price: decimal.NewFromInt(1), Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "TEA", got.SKU)

	_, err = uc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestProductUseCase_Deactivate(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Products())
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "TEA", Name: "Masala Tea", Price: decimal.NewFromInt(150), Stock: 3})
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(ctx, p.ID))
	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, 3, got.Stock)

	// Repetir la baja no es error.
	assert.NoError(t, uc.Deactivate(ctx, p.ID))

	err = uc.Deactivate(ctx, "missing")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.EntityProduct, nf.Entity)
}
