package ports

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptData datos de una factura confirmada listos para representar.
type ReceiptData struct {
	InvoiceID     string
	CreatedAt     time.Time
	CustomerName  string
	CustomerEmail string
	Lines         []ReceiptLine
	Total         decimal.Decimal
}

// ReceiptLine una línea del recibo.
type ReceiptLine struct {
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// ReceiptRenderer genera la representación PDF del recibo.
type ReceiptRenderer interface {
	RenderReceipt(r ReceiptData) ([]byte, error)
}
