package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartpos-api/internal/infrastructure/metrics"
)

func TestPrometheus_InvoiceCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewPrometheus(reg)

	m.InvoiceCreated(decimal.NewFromInt(300))
	m.InvoiceCreated(decimal.NewFromInt(50))
	m.InvoiceRejected("insufficient_stock")

	expected := `
# HELP smartpos_invoices_created_total Facturas confirmadas.
# TYPE smartpos_invoices_created_total counter
smartpos_invoices_created_total 2
# HELP smartpos_invoices_rejected_total Facturas abortadas por motivo.
# TYPE smartpos_invoices_rejected_total counter
smartpos_invoices_rejected_total{reason="insufficient_stock"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"smartpos_invoices_created_total", "smartpos_invoices_rejected_total"))
}

func TestPrometheus_NotificationCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewPrometheus(reg)

	m.NotificationsGenerated(2, 1, 0)
	m.NotificationsDispatched(1, 1, 0, 1)

	assert.Equal(t, 3, testutil.CollectAndCount(reg, "smartpos_notifications_generated_total"))
	assert.Equal(t, 4, testutil.CollectAndCount(reg, "smartpos_notifications_dispatched_total"))
}
