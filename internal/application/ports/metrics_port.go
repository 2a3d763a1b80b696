package ports

import "github.com/shopspring/decimal"

// Métricas de negocio. La implementación Prometheus vive en infrastructure/metrics.
type Metrics interface {
	InvoiceCreated(total decimal.Decimal)
	InvoiceRejected(reason string)
	ReceiptResult(result string)
	PriceChanged()
	NotificationsGenerated(created, skipped, failed int)
	NotificationsDispatched(sent, failed, skipped, errored int)
}

// NopMetrics no registra nada.
type NopMetrics struct{}

func (NopMetrics) InvoiceCreated(decimal.Decimal)             {}
func (NopMetrics) InvoiceRejected(string)                     {}
func (NopMetrics) ReceiptResult(string)                       {}
func (NopMetrics) PriceChanged()                              {}
func (NopMetrics) NotificationsGenerated(int, int, int)       {}
func (NopMetrics) NotificationsDispatched(int, int, int, int) {}
