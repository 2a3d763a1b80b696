// Package metrics implementa ports.Metrics con Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartpos-api/internal/application/ports"
)

const namespace = "smartpos"

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus contadores de negocio registrados en un registry propio.
type Prometheus struct {
	invoicesCreated  prometheus.Counter
	invoicesRejected *prometheus.CounterVec
	invoiceAmount    prometheus.Histogram
	receipts         *prometheus.CounterVec
	priceChanges     prometheus.Counter
	notifications    *prometheus.CounterVec
	dispatches       *prometheus.CounterVec
}

// NewPrometheus crea y registra los colectores en reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	m := &Prometheus{
		invoicesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "invoices_created_total",
			Help: "Facturas confirmadas.",
		}),
		invoicesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "invoices_rejected_total",
			Help: "Facturas abortadas por motivo.",
		}, []string{"reason"}),
		invoiceAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "invoice_total_amount",
			Help:    "Total de las facturas confirmadas.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}),
		receipts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "receipts_total",
			Help: "Recibos por correo por resultado (sent, failed, dropped).",
		}, []string{"result"}),
		priceChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "price_changes_total",
			Help: "Cambios de precio registrados en el historial.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "notifications_generated_total",
			Help: "Candidatos de alerta procesados por resultado (created, skipped, failed).",
		}, []string{"result"}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "notifications_dispatched_total",
			Help: "Notificaciones despachadas por resultado (sent, failed, skipped, errored).",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.invoicesCreated, m.invoicesRejected, m.invoiceAmount, m.receipts,
		m.priceChanges, m.notifications, m.dispatches,
	)
	return m
}

func (m *Prometheus) InvoiceCreated(total decimal.Decimal) {
	m.invoicesCreated.Inc()
	f, _ := total.Float64()
	m.invoiceAmount.Observe(f)
}

func (m *Prometheus) InvoiceRejected(reason string) { m.invoicesRejected.WithLabelValues(reason).Inc() }

func (m *Prometheus) ReceiptResult(result string) { m.receipts.WithLabelValues(result).Inc() }

func (m *Prometheus) PriceChanged() { m.priceChanges.Inc() }

func (m *Prometheus) NotificationsGenerated(created, skipped, failed int) {
	m.notifications.WithLabelValues("created").Add(float64(created))
	m.notifications.WithLabelValues("skipped").Add(float64(skipped))
	m.notifications.WithLabelValues("failed").Add(float64(failed))
}

func (m *Prometheus) NotificationsDispatched(sent, failed, skipped, errored int) {
	m.dispatches.WithLabelValues("sent").Add(float64(sent))
	m.dispatches.WithLabelValues("failed").Add(float64(failed))
	m.dispatches.WithLabelValues("skipped").Add(float64(skipped))
	m.dispatches.WithLabelValues("errored").Add(float64(errored))
}
