package pricing

import (
	"context"

	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

// PricingTxRunner ejecuta fn en una transacción con el producto y su historial.
// La fila bloqueada con GetForUpdate queda bloqueada hasta el commit o rollback.
type PricingTxRunner interface {
	RunPricing(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		historyRepo repository.PriceHistoryRepository,
	) error) error
}
