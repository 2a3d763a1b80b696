package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/smartpos-api/pkg/money"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "₹150.00", money.Format("₹", decimal.NewFromInt(150)))
	assert.Equal(t, "$99.90", money.Format("$", decimal.RequireFromString("99.9")))
}
