package repository

import (
	"context"
	"time"

	"github.com/jhoicas/smartpos-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para Notification.
type NotificationRepository interface {
	// CreateIfAbsent inserta la notificación salvo que ya exista una con la misma
	// llave (customer, product, old_price, new_price). La verificación y la inserción
	// son una sola operación atómica. created=false si ya existía.
	CreateIfAbsent(ctx context.Context, n *entity.Notification) (created bool, err error)
	List(ctx context.Context) ([]*entity.Notification, error)
	ListPending(ctx context.Context) ([]*entity.Notification, error)
	// Transition mueve la notificación de PENDING a status. applied=false si la fila
	// ya no estaba en PENDING (otro despachador la procesó).
	Transition(ctx context.Context, id, status string, sentAt *time.Time) (applied bool, err error)
}
