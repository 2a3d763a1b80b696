package repository

import (
	"context"

	"github.com/jhoicas/smartpos-api/internal/domain/entity"
)

// PriceHistoryRepository Price Ledger: historial de solo inserción.
type PriceHistoryRepository interface {
	Create(ctx context.Context, h *entity.ProductPriceHistory) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductPriceHistory, error)
}
