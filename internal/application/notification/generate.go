package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/smartpos-api/internal/application/dto"
	"github.com/jhoicas/smartpos-api/internal/application/ports"
	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
	"github.com/jhoicas/smartpos-api/pkg/logger"
)

// GenerateUseCase convierte el escaneo de bajadas en notificaciones PENDING, a lo sumo una
// por (cliente, producto, precio anterior, precio nuevo).
type GenerateUseCase struct {
	scanner  DropScanner
	repo     repository.NotificationRepository
	metrics  ports.Metrics
	log      *logger.Logger
	currency string
	now      func() time.Time
}

// NewGenerateUseCase construye el caso de uso.
func NewGenerateUseCase(scanner DropScanner, repo repository.NotificationRepository, currency string, metrics ports.Metrics, log *logger.Logger) *GenerateUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &GenerateUseCase{
		scanner:  scanner,
		repo:     repo,
		metrics:  metrics,
		log:      log.Component("notifications"),
		currency: currency,
		now:      time.Now,
	}
}

// Generate inserta las notificaciones que falten. Es seguro repetirlo: las ya existentes se omiten.
// Un error en un candidato se cuenta y no detiene el lote.
func (uc *GenerateUseCase) Generate(ctx context.Context, productID string) (*dto.GenerateNotificationsResponse, error) {
	scan, err := uc.scanner.ScanDrops(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.GenerateNotificationsResponse{ProductID: productID, Eligible: len(scan.Candidates)}
	for _, c := range scan.Candidates {
		n := &entity.Notification{
			ID:         uuid.New().String(),
			CustomerID: c.CustomerID,
			ProductID:  productID,
			OldPrice:   entity.NormalizePrice(c.OldPrice),
			NewPrice:   entity.NormalizePrice(c.CurrentPrice),
			Email:      c.CustomerEmail,
			Message:    RenderMessage(c.CustomerName, scan.Product.Name, c.OldPrice, c.CurrentPrice, uc.currency),
			Status:     entity.NotificationPending,
			CreatedAt:  uc.now().UTC(),
		}
		created, err := uc.repo.CreateIfAbsent(ctx, n)
		switch {
		case err != nil:
			out.Failed++
			uc.log.Error().Err(err).
				Str("customer_id", c.CustomerID).
				Str("product_id", productID).
				Msg("no se pudo crear la notificación")
		case created:
			out.Created++
		default:
			out.Skipped++
		}
	}
	uc.metrics.NotificationsGenerated(out.Created, out.Skipped, out.Failed)
	uc.log.Info().
		Str("product_id", productID).
		Int("created", out.Created).
		Int("skipped", out.Skipped).
		Int("failed", out.Failed).
		Msg("notificaciones generadas")
	return out, nil
}

// List todas las notificaciones, más recientes primero.
func (uc *GenerateUseCase) List(ctx context.Context) ([]dto.NotificationResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			ID:         n.ID,
			CustomerID: n.CustomerID,
			ProductID:  n.ProductID,
			OldPrice:   n.OldPrice,
			NewPrice:   n.NewPrice,
			Email:      n.Email,
			Message:    n.Message,
			Status:     n.Status,
			CreatedAt:  n.CreatedAt,
			SentAt:     n.SentAt,
		})
	}
	return out, nil
}
