package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/smartpos-api/internal/domain/entity"
)

func TestNormalizePrice(t *testing.T) {
	assert.True(t, entity.NormalizePrice(decimal.RequireFromString("10.005")).Equal(decimal.RequireFromString("10.01")))
	assert.True(t, entity.NormalizePrice(decimal.RequireFromString("150")).Equal(decimal.RequireFromString("150.00")))
	assert.Equal(t, "99.90", entity.NormalizePrice(decimal.RequireFromString("99.9")).StringFixed(entity.PriceScale))
}

func TestComputeLineTotal(t *testing.T) {
	got := entity.ComputeLineTotal(3, decimal.RequireFromString("19.99"))
	assert.True(t, got.Equal(decimal.RequireFromString("59.97")))
}

func TestDedupKey_IgnoresPriceScale(t *testing.T) {
	a := &entity.Notification{CustomerID: "c", ProductID: "p", OldPrice: decimal.RequireFromString("150"), NewPrice: decimal.RequireFromString("100.0")}
	b := &entity.Notification{CustomerID: "c", ProductID: "p", OldPrice: decimal.RequireFromString("150.00"), NewPrice: decimal.RequireFromString("100")}
	assert.Equal(t, a.DedupKey(), b.DedupKey())

	b.NewPrice = decimal.RequireFromString("80")
	assert.NotEqual(t, a.DedupKey(), b.DedupKey())
}

func TestCustomerHasEmail(t *testing.T) {
	var nilCustomer *entity.Customer
	assert.False(t, nilCustomer.HasEmail())
	assert.False(t, (&entity.Customer{}).HasEmail())
	assert.True(t, (&entity.Customer{Email: "a@b.c"}).HasEmail())
}
