package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartpos-api/internal/application/dto"
	"github.com/jhoicas/smartpos-api/internal/application/ports"
	"github.com/jhoicas/smartpos-api/internal/domain"
	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
	"github.com/jhoicas/smartpos-api/pkg/logger"
)

const publishTimeout = 5 * time.Second

// LedgerUseCase Price Ledger: cambia precios dejando historial en la misma transacción.
type LedgerUseCase struct {
	txRunner    PricingTxRunner
	productRepo repository.ProductRepository
	historyRepo repository.PriceHistoryRepository
	publisher   ports.PriceEventPublisher
	metrics     ports.Metrics
	log         *logger.Logger
	now         func() time.Time
}

// NewLedgerUseCase construye el caso de uso. publisher y metrics pueden ser nil.
func NewLedgerUseCase(
	txRunner PricingTxRunner,
	productRepo repository.ProductRepository,
	historyRepo repository.PriceHistoryRepository,
	publisher ports.PriceEventPublisher,
	metrics ports.Metrics,
	log *logger.Logger,
) *LedgerUseCase {
	if publisher == nil {
		publisher = ports.NopPublisher{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		historyRepo: historyRepo,
		publisher:   publisher,
		metrics:     metrics,
		log:         log.Component("pricing"),
		now:         time.Now,
	}
}

// UpdatePrice bloquea el producto, y si el precio cambia guarda (old, new) en el historial y
// actualiza products.price antes del commit. Precio igual = no-op sin historial.
func (uc *LedgerUseCase) UpdatePrice(ctx context.Context, in dto.UpdatePriceRequest) (*dto.PriceUpdateResponse, error) {
	if in.ProductID == "" {
		return nil, domain.InvalidInput("product_id es obligatorio")
	}
	newPrice := entity.NormalizePrice(in.NewPrice)
	resp := &dto.PriceUpdateResponse{ProductID: in.ProductID, NewPrice: newPrice}
	var changedAt time.Time

	err := uc.txRunner.RunPricing(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.PriceHistoryRepository,
	) error {
		p, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound(domain.EntityProduct, in.ProductID)
		}
		if !newPrice.GreaterThan(decimal.Zero) {
			return domain.InvalidInput("el precio debe ser positivo")
		}
		oldPrice := entity.NormalizePrice(p.Price)
		resp.OldPrice = oldPrice
		if oldPrice.Equal(newPrice) {
			return nil
		}
		changedAt = uc.now().UTC()
		if err := historyRepo.Create(ctx, &entity.ProductPriceHistory{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			OldPrice:  oldPrice,
			NewPrice:  newPrice,
			ChangedAt: changedAt,
		}); err != nil {
			return err
		}
		if err := productRepo.UpdatePrice(ctx, p.ID, newPrice, changedAt); err != nil {
			return err
		}
		resp.Changed = true
		resp.ChangedAt = &changedAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !resp.Changed {
		return resp, nil
	}

	uc.metrics.PriceChanged()
	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("old_price", resp.OldPrice.StringFixed(entity.PriceScale)).
		Str("new_price", newPrice.StringFixed(entity.PriceScale)).
		Msg("precio actualizado")

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := uc.publisher.PublishPriceChanged(pubCtx, ports.PriceChangedEvent{
		ProductID: in.ProductID,
		OldPrice:  resp.OldPrice,
		NewPrice:  newPrice,
		ChangedAt: changedAt,
	}); err != nil {
		uc.log.Warn().Err(err).Str("product_id", in.ProductID).Msg("no se pudo publicar el cambio de precio")
	}
	return resp, nil
}

// ListHistory historial de precios del producto en orden cronológico.
func (uc *LedgerUseCase) ListHistory(ctx context.Context, productID string) (*dto.PriceHistoryResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound(domain.EntityProduct, productID)
	}
	rows, err := uc.historyRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.PriceHistoryResponse{ProductID: productID, History: make([]dto.PriceHistoryEntry, 0, len(rows))}
	for _, h := range rows {
		out.History = append(out.History, dto.PriceHistoryEntry{
			ID:        h.ID,
			OldPrice:  h.OldPrice,
			NewPrice:  h.NewPrice,
			ChangedAt: h.ChangedAt,
		})
	}
	return out, nil
}
