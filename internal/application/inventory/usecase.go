package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/smartpos-api/internal/application/dto"
	"github.com/jhoicas/smartpos-api/internal/domain"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
	"github.com/jhoicas/smartpos-api/pkg/logger"
)

// RestockUseCase repone stock. Es la única entrada de stock; las salidas van por la reserva de facturación.
type RestockUseCase struct {
	stockRepo repository.StockRepository
	log       *logger.Logger
}

// NewRestockUseCase construye el caso de uso.
func NewRestockUseCase(stockRepo repository.StockRepository, log *logger.Logger) *RestockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RestockUseCase{stockRepo: stockRepo, log: log.Component("inventory")}
}

// Restock suma quantity (> 0) al stock del producto en una sola sentencia.
func (uc *RestockUseCase) Restock(ctx context.Context, productID string, in dto.RestockRequest) (*dto.RestockResponse, error) {
	if productID == "" {
		return nil, domain.InvalidInput("product_id es obligatorio")
	}
	if in.Quantity <= 0 {
		return nil, domain.InvalidInput("la cantidad a reponer debe ser positiva")
	}
	stock, found, err := uc.stockRepo.Restock(ctx, productID, in.Quantity)
	if err != nil {
		return nil, fmt.Errorf("restock: %w", err)
	}
	if !found {
		return nil, domain.NewNotFound(domain.EntityProduct, productID)
	}
	uc.log.Info().Str("product_id", productID).Int("added", in.Quantity).Int("stock", stock).Msg("stock repuesto")
	return &dto.RestockResponse{ProductID: productID, Stock: stock}, nil
}
