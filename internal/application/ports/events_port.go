package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceChangedEvent se publica después de confirmar un cambio de precio.
type PriceChangedEvent struct {
	ProductID string          `json:"product_id"`
	OldPrice  decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal `json:"new_price"`
	ChangedAt time.Time       `json:"changed_at"`
}

// PriceEventPublisher publica eventos de precio hacia un broker externo.
// Las implementaciones no deben bloquear indefinidamente; el llamador pasa un ctx con timeout.
type PriceEventPublisher interface {
	PublishPriceChanged(ctx context.Context, ev PriceChangedEvent) error
}

// NopPublisher descarta los eventos (broker no configurado).
type NopPublisher struct{}

func (NopPublisher) PublishPriceChanged(context.Context, PriceChangedEvent) error { return nil }
