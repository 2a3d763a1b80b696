package entity

import "github.com/shopspring/decimal"

// InvoiceItem línea de factura. Inmutable: PriceAtPurchase es la copia del
// precio del producto en el instante de la reserva, nunca una referencia.
type InvoiceItem struct {
	ID              string
	InvoiceID       string
	LineNo          int // posición en la factura, desde 1
	ProductID       string
	Quantity        int
	PriceAtPurchase decimal.Decimal
	LineTotal       decimal.Decimal
}

// ComputeLineTotal devuelve quantity * price.
func ComputeLineTotal(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
