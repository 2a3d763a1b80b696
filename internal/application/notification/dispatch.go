package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/smartpos-api/internal/application/dto"
	"github.com/jhoicas/smartpos-api/internal/application/ports"
	"github.com/jhoicas/smartpos-api/internal/domain"
	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
	"github.com/jhoicas/smartpos-api/pkg/logger"
)

const dispatchLockKey = "smartpos:notifications:dispatch"

// DispatchConfig opciones del despacho.
type DispatchConfig struct {
	Subject string
	LockTTL time.Duration
}

// DispatchUseCase envía las notificaciones PENDING. No reintenta: FAILED es terminal.
type DispatchUseCase struct {
	repo    repository.NotificationRepository
	mailer  ports.Mailer
	locker  ports.Locker
	cfg     DispatchConfig
	metrics ports.Metrics
	log     *logger.Logger
	now     func() time.Time
}

// NewDispatchUseCase construye el caso de uso. locker nil = sin candado entre procesos.
func NewDispatchUseCase(repo repository.NotificationRepository, mailer ports.Mailer, locker ports.Locker, cfg DispatchConfig, metrics ports.Metrics, log *logger.Logger) *DispatchUseCase {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 2 * time.Minute
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DispatchUseCase{
		repo:    repo,
		mailer:  mailer,
		locker:  locker,
		cfg:     cfg,
		metrics: metrics,
		log:     log.Component("dispatcher"),
		now:     time.Now,
	}
}

// DispatchPending recorre las PENDING: sin email => FAILED; envío ok => SENT con sent_at;
// error de envío => FAILED. Una fila que ya no está PENDING se cuenta como omitida y una
// cuyo estado no se pudo guardar se cuenta en Errored.
func (uc *DispatchUseCase) DispatchPending(ctx context.Context) (*dto.DispatchResponse, error) {
	if uc.locker != nil {
		token, ok, err := uc.locker.TryLock(ctx, dispatchLockKey, uc.cfg.LockTTL)
		if err != nil {
			return nil, fmt.Errorf("dispatch lock: %w", err)
		}
		if !ok {
			return nil, domain.ErrDispatchInProgress
		}
		defer func() {
			if err := uc.locker.Release(context.WithoutCancel(ctx), dispatchLockKey, token); err != nil {
				uc.log.Warn().Err(err).Msg("no se pudo liberar el candado de despacho")
			}
		}()
	}

	pending, err := uc.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.DispatchResponse{Pending: len(pending)}
	for _, n := range pending {
		status, sentAt := uc.deliver(ctx, n)
		applied, err := uc.repo.Transition(ctx, n.ID, status, sentAt)
		if err != nil {
			// La fila sigue PENDING; el lote continúa.
			out.Errored++
			uc.log.Error().Err(err).
				Str("notification_id", n.ID).
				Str("status", status).
				Msg("no se pudo registrar el estado de la notificación")
			continue
		}
		switch {
		case !applied:
			out.Skipped++
		case status == entity.NotificationSent:
			out.Sent++
		default:
			out.Failed++
		}
	}
	uc.metrics.NotificationsDispatched(out.Sent, out.Failed, out.Skipped, out.Errored)
	uc.log.Info().
		Int("pending", out.Pending).
		Int("sent", out.Sent).
		Int("failed", out.Failed).
		Int("skipped", out.Skipped).
		Int("errored", out.Errored).
		Msg("despacho de notificaciones")
	return out, nil
}

// deliver intenta el envío y devuelve el estado destino.
func (uc *DispatchUseCase) deliver(ctx context.Context, n *entity.Notification) (string, *time.Time) {
	if n.Email == "" {
		uc.log.Warn().Str("notification_id", n.ID).Msg("cliente sin email, notificación fallida")
		return entity.NotificationFailed, nil
	}
	if err := uc.mailer.Send(ctx, n.Email, uc.cfg.Subject, messageHTML(n.Message)); err != nil {
		if !errors.Is(err, domain.ErrDeliveryFailure) {
			err = fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, err)
		}
		uc.log.Error().Err(err).Str("notification_id", n.ID).Str("to", n.Email).Msg("fallo al enviar notificación")
		return entity.NotificationFailed, nil
	}
	sentAt := uc.now().UTC()
	return entity.NotificationSent, &sentAt
}
