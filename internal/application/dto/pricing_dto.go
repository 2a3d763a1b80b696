package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdatePriceRequest body para POST /api/pricing/update.
type UpdatePriceRequest struct {
	ProductID string          `json:"product_id"`
	NewPrice  decimal.Decimal `json:"new_price"`
}

// PriceUpdateResponse resultado de la actualización. Changed=false cuando el
// precio nuevo es igual al vigente (no se registra historial).
type PriceUpdateResponse struct {
	ProductID string          `json:"product_id"`
	OldPrice  decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal `json:"new_price"`
	Changed   bool            `json:"changed"`
	ChangedAt *time.Time      `json:"changed_at,omitempty"`
}

// PriceHistoryEntry una fila del historial de precios.
type PriceHistoryEntry struct {
	ID        string          `json:"id"`
	OldPrice  decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal `json:"new_price"`
	ChangedAt time.Time       `json:"changed_at"`
}

// PriceHistoryResponse historial completo de un producto.
type PriceHistoryResponse struct {
	ProductID string              `json:"product_id"`
	History   []PriceHistoryEntry `json:"history"`
}

// PriceDropCandidate compra elegible: se pagó más que el precio vigente.
type PriceDropCandidate struct {
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"phone"`
	CustomerEmail string          `json:"email,omitempty"`
	InvoiceID     string          `json:"invoice_id"`
	OldPrice      decimal.Decimal `json:"old_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	Difference    decimal.Decimal `json:"difference"`
}

// PriceDropScanResponse respuesta de GET /api/price-drops/product/:productId.
type PriceDropScanResponse struct {
	ProductID         string               `json:"product_id"`
	ProductName       string               `json:"product_name"`
	CurrentPrice      decimal.Decimal      `json:"current_price"`
	EligibleCustomers []PriceDropCandidate `json:"eligible_customers"`
	Count             int                  `json:"count"`
}
