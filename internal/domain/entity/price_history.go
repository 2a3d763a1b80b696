package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductPriceHistory registra un cambio de precio aceptado. Solo se inserta.
type ProductPriceHistory struct {
	ID        string
	ProductID string
	OldPrice  decimal.Decimal
	NewPrice  decimal.Decimal
	ChangedAt time.Time
}
