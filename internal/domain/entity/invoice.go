package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una venta confirmada.
// TotalAmount siempre es la suma de LineTotal de sus ítems.
type Invoice struct {
	ID          string
	CustomerID  string // vacío = venta sin cliente
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

// HasCustomer indica si la factura tiene cliente asociado.
func (i *Invoice) HasCustomer() bool { return i.CustomerID != "" }
