package billing

import (
	"context"

	"github.com/jhoicas/smartpos-api/internal/application/ports"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y facturación.
// Si fn devuelve error se hace rollback de todas las reservas y filas escritas.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// ReceiptScheduler encola el envío de un recibo sin bloquear.
// Devuelve false si no pudo encolarlo (cola llena o cerrada).
type ReceiptScheduler interface {
	Schedule(r ports.ReceiptData) bool
}
