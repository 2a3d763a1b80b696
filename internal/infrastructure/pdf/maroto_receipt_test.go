package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartpos-api/internal/application/ports"
	"github.com/jhoicas/smartpos-api/internal/infrastructure/pdf"
)

func TestRenderReceipt_ProducesPDF(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator("SmartPOS")

	out, err := g.RenderReceipt(ports.ReceiptData{
		InvoiceID:     "inv-1",
		CreatedAt:     time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		Lines: []ports.ReceiptLine{
			{SKU: "TEA-1", Name: "Tea", Quantity: 2, UnitPrice: decimal.NewFromInt(150), LineTotal: decimal.NewFromInt(300)},
		},
		Total: decimal.NewFromInt(300),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
