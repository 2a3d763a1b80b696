package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// CustomerID es opcional (venta de mostrador).
type CreateInvoiceRequest struct {
	CustomerID string               `json:"customer_id,omitempty"`
	Items      []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest línea solicitada (producto y cantidad).
type InvoiceItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// InvoiceResponse factura confirmada con su detalle.
type InvoiceResponse struct {
	ID           string                `json:"id"`
	CustomerID   string                `json:"customer_id,omitempty"`
	CustomerName string                `json:"customer_name,omitempty"`
	TotalAmount  decimal.Decimal       `json:"total_amount"`
	CreatedAt    time.Time             `json:"created_at"`
	Items        []InvoiceItemResponse `json:"items"`
}

// InvoiceItemResponse línea de detalle en la respuesta.
type InvoiceItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	SKU             string          `json:"sku,omitempty"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	LineTotal       decimal.Decimal `json:"line_total"`
}
