package billing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"
	"time"

	"github.com/jhoicas/smartpos-api/internal/application/ports"
	"github.com/jhoicas/smartpos-api/pkg/logger"
	"github.com/jhoicas/smartpos-api/pkg/money"
)

// Resultados de entrega del recibo (etiqueta de métrica).
const (
	ReceiptSent    = "sent"
	ReceiptFailed  = "failed"
	ReceiptDropped = "dropped"
)

const receiptSendTimeout = 30 * time.Second

var receiptTmpl = template.Must(template.New("receipt").Parse(`<html><body>
<h2>Receipt {{.InvoiceID}}</h2>
<p>Hello {{.CustomerName}}, thank you for your purchase.</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>SKU</th><th>Product</th><th>Qty</th><th>Price</th><th>Total</th></tr>
{{range .Lines}}<tr><td>{{.SKU}}</td><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice}}</td><td>{{.LineTotal}}</td></tr>
{{end}}</table>
<p><strong>Total: {{.Total}}</strong></p>
<p>{{.Date}}</p>
</body></html>`))

// ReceiptConfig opciones del despachador de recibos.
type ReceiptConfig struct {
	Workers        int
	QueueSize      int
	Subject        string
	CurrencySymbol string
}

// ReceiptDispatcher envía recibos por correo en segundo plano con una cola acotada.
// Los errores de envío se registran y cuentan; nunca llegan al flujo de facturación.
type ReceiptDispatcher struct {
	cfg      ReceiptConfig
	mailer   ports.Mailer
	renderer ports.ReceiptRenderer
	metrics  ports.Metrics
	log      *logger.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan ports.ReceiptData
	wg     sync.WaitGroup
}

var _ ReceiptScheduler = (*ReceiptDispatcher)(nil)

// NewReceiptDispatcher arranca los workers. renderer puede ser nil (correo sin PDF adjunto).
func NewReceiptDispatcher(cfg ReceiptConfig, mailer ports.Mailer, renderer ports.ReceiptRenderer, metrics ports.Metrics, log *logger.Logger) *ReceiptDispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	d := &ReceiptDispatcher{
		cfg:      cfg,
		mailer:   mailer,
		renderer: renderer,
		metrics:  metrics,
		log:      log.Component("receipts"),
		queue:    make(chan ports.ReceiptData, cfg.QueueSize),
	}
	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Schedule encola sin bloquear.
func (d *ReceiptDispatcher) Schedule(r ports.ReceiptData) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}
	select {
	case d.queue <- r:
		d.log.Debug().Str("invoice_id", r.InvoiceID).Msg("recibo encolado")
		return true
	default:
		return false
	}
}

// Close deja de aceptar recibos y espera a que se envíen los encolados.
func (d *ReceiptDispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *ReceiptDispatcher) worker() {
	defer d.wg.Done()
	for r := range d.queue {
		d.deliver(r)
	}
}

func (d *ReceiptDispatcher) deliver(r ports.ReceiptData) {
	ctx, cancel := context.WithTimeout(context.Background(), receiptSendTimeout)
	defer cancel()

	body, err := RenderReceiptHTML(r, d.cfg.CurrencySymbol)
	if err != nil {
		d.fail(r, err)
		return
	}
	var attachments []ports.Attachment
	if d.renderer != nil {
		pdf, err := d.renderer.RenderReceipt(r)
		if err != nil {
			d.log.Warn().Err(err).Str("invoice_id", r.InvoiceID).Msg("no se pudo generar el PDF, se envía sin adjunto")
		} else {
			attachments = append(attachments, ports.Attachment{
				Filename:    fmt.Sprintf("receipt-%s.pdf", r.InvoiceID),
				ContentType: "application/pdf",
				Data:        pdf,
			})
		}
	}
	if err := d.mailer.Send(ctx, r.CustomerEmail, d.cfg.Subject, body, attachments...); err != nil {
		d.fail(r, err)
		return
	}
	d.metrics.ReceiptResult(ReceiptSent)
	d.log.Info().Str("invoice_id", r.InvoiceID).Str("to", r.CustomerEmail).Msg("recibo enviado")
}

func (d *ReceiptDispatcher) fail(r ports.ReceiptData, err error) {
	d.metrics.ReceiptResult(ReceiptFailed)
	d.log.Error().Err(err).Str("invoice_id", r.InvoiceID).Msg("fallo al enviar recibo")
}

// RenderReceiptHTML cuerpo HTML del recibo.
func RenderReceiptHTML(r ports.ReceiptData, currency string) (string, error) {
	type line struct {
		SKU, Name, UnitPrice, LineTotal string
		Quantity                        int
	}
	view := struct {
		InvoiceID, CustomerName, Total, Date string
		Lines                                []line
	}{
		InvoiceID:    r.InvoiceID,
		CustomerName: r.CustomerName,
		Total:        money.Format(currency, r.Total),
		Date:         r.CreatedAt.Format("2006-01-02 15:04"),
	}
	for _, l := range r.Lines {
		view.Lines = append(view.Lines, line{
			SKU:       l.SKU,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: money.Format(currency, l.UnitPrice),
			LineTotal: money.Format(currency, l.LineTotal),
		})
	}
	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return buf.String(), nil
}
