package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateNotificationsResponse resultado de generar alertas para un producto.
type GenerateNotificationsResponse struct {
	ProductID string `json:"product_id"`
	Eligible  int    `json:"eligible"`
	Created   int    `json:"created"`
	Skipped   int    `json:"skipped"` // ya notificados para esa transición de precio
	Failed    int    `json:"failed"`
}

// NotificationResponse notificación en listados.
type NotificationResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	ProductID  string          `json:"product_id"`
	OldPrice   decimal.Decimal `json:"old_price"`
	NewPrice   decimal.Decimal `json:"new_price"`
	Email      string          `json:"email,omitempty"`
	Message    string          `json:"message"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	SentAt     *time.Time      `json:"sent_at,omitempty"`
}

// DispatchResponse conteos del envío de pendientes.
type DispatchResponse struct {
	Pending int `json:"pending"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"` // procesadas por otro despachador
	Errored int `json:"errored"` // estado no guardado, siguen PENDING
}
