package notification

import (
	"context"

	"github.com/jhoicas/smartpos-api/internal/application/pricing"
)

// DropScanner fuente de candidatos (pricing.ScanDropsUseCase).
type DropScanner interface {
	ScanDrops(ctx context.Context, productID string) (*pricing.DropScan, error)
}
