package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de entrega de una notificación.
const (
	NotificationPending = "PENDING" // estado inicial único
	NotificationSent    = "SENT"    // terminal
	NotificationFailed  = "FAILED"  // terminal, no se reencola
)

// Notification alerta de bajada de precio para un cliente.
// (CustomerID, ProductID, OldPrice, NewPrice) es la llave de deduplicación.
type Notification struct {
	ID         string
	CustomerID string
	ProductID  string
	OldPrice   decimal.Decimal
	NewPrice   decimal.Decimal
	Email      string // destino al momento de generar; vacío = no hay a quién enviar
	Message    string
	Status     string
	CreatedAt  time.Time
	SentAt     *time.Time
}

// CanTransition indica si from -> to respeta la máquina de estados
// PENDING -> {SENT, FAILED}.
func CanTransition(from, to string) bool {
	return from == NotificationPending && (to == NotificationSent || to == NotificationFailed)
}

// DedupKey llave natural de la notificación, con precios normalizados.
func (n *Notification) DedupKey() string {
	return n.CustomerID + "|" + n.ProductID + "|" +
		NormalizePrice(n.OldPrice).StringFixed(PriceScale) + "|" +
		NormalizePrice(n.NewPrice).StringFixed(PriceScale)
}
