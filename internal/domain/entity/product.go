package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible. Price y Stock solo cambian vía
// reserva condicional (venta), reposición o actualización de precio.
type Product struct {
	ID        string
	SKU       string // único
	Name      string
	Price     decimal.Decimal // precio de venta vigente, > 0
	Stock     int             // nunca negativo
	Active    bool            // false = eliminado lógicamente, no se vende
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceScale decimales con los que se guardan los precios (NUMERIC(12,2)).
const PriceScale = 2

// NormalizePrice redondea el precio a PriceScale para que las comparaciones
// de igualdad (no-op de precio, llave de deduplicación) sean exactas.
func NormalizePrice(p decimal.Decimal) decimal.Decimal {
	return p.Round(PriceScale)
}
