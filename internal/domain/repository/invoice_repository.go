package repository

import (
	"context"
	"time"

	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PurchaseRecord una línea de factura de un producto unida a su factura y cliente.
// Lo produce la DB para el escáner de bajadas de precio.
type PurchaseRecord struct {
	InvoiceID        string
	InvoiceCreatedAt time.Time
	CustomerID       string
	CustomerName     string
	CustomerPhone    string
	CustomerEmail    string
	Quantity         int
	PriceAtPurchase  decimal.Decimal
}

// InvoiceRepository define el puerto de persistencia para Invoice e InvoiceItem.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	// SumLineTotals suma line_total de los ítems guardados de la factura.
	SumLineTotals(ctx context.Context, invoiceID string) (decimal.Decimal, error)
	// ListPurchasesByProduct devuelve solo compras con cliente, ordenadas por
	// fecha de factura e ID de factura.
	ListPurchasesByProduct(ctx context.Context, productID string) ([]PurchaseRecord, error)
}
