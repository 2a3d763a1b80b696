package billing_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartpos-api/internal/application/billing"
	"github.com/jhoicas/smartpos-api/internal/application/ports"
)

type sentMail struct {
	to, subject, body string
	attachments       []ports.Attachment
}

type stubMailer struct {
	mu      sync.Mutex
	err     error
	sent    []sentMail
	started chan struct{} // si no es nil se notifica al entrar a Send
	release chan struct{} // si no es nil Send espera hasta que se cierre
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string, attachments ...ports.Attachment) error {
	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.release != nil {
		<-m.release
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body, attachments: attachments})
	return nil
}

func (m *stubMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type stubRenderer struct{ err error }

func (r stubRenderer) RenderReceipt(ports.ReceiptData) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4"), nil
}

func sampleReceipt(id string) ports.ReceiptData {
	return ports.ReceiptData{
		InvoiceID:     id,
		CreatedAt:     time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		CustomerName:  "Asha <b>",
		CustomerEmail: "asha@example.com",
		Lines: []ports.ReceiptLine{{
			SKU: "A-1", Name: "Tea", Quantity: 2,
			UnitPrice: decimal.NewFromInt(150), LineTotal: decimal.NewFromInt(300),
		}},
		Total: decimal.NewFromInt(300),
	}
}

func TestReceiptDispatcher_SendsWithPDF(t *testing.T) {
	mailer := &stubMailer{}
	m := &fakeMetrics{}
	d := billing.NewReceiptDispatcher(billing.ReceiptConfig{Workers: 2, QueueSize: 4, Subject: "Receipt", CurrencySymbol: "₹"}, mailer, stubRenderer{}, m, nil)

	require.True(t, d.Schedule(sampleReceipt("inv-1")))
	d.Close()

	sent := mailer.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "asha@example.com", sent[0].to)
	assert.Equal(t, "Receipt", sent[0].subject)
	assert.Contains(t, sent[0].body, "₹300.00")
	require.Len(t, sent[0].attachments, 1)
	assert.Equal(t, "receipt-inv-1.pdf", sent[0].attachments[0].Filename)
	assert.Equal(t, []string{billing.ReceiptSent}, m.receiptResults())
}

func TestReceiptDispatcher_PDFFailureStillSends(t *testing.T) {
	mailer := &stubMailer{}
	d := billing.NewReceiptDispatcher(billing.ReceiptConfig{Workers: 1, QueueSize: 1}, mailer, stubRenderer{err: errors.New("boom")}, nil, nil)

	require.True(t, d.Schedule(sampleReceipt("inv-2")))
	d.Close()

	sent := mailer.all()
	require.Len(t, sent, 1)
	assert.Empty(t, sent[0].attachments)
}

func TestReceiptDispatcher_DeliveryFailureIsCounted(t *testing.T) {
	mailer := &stubMailer{err: errors.New("smtp down")}
	m := &fakeMetrics{}
	d := billing.NewReceiptDispatcher(billing.ReceiptConfig{Workers: 1, QueueSize: 1}, mailer, nil, m, nil)

	require.True(t, d.Schedule(sampleReceipt("inv-3")))
	d.Close()

	assert.Empty(t, mailer.all())
	assert.Equal(t, []string{billing.ReceiptFailed}, m.receiptResults())
}

func TestReceiptDispatcher_FullQueueDrops(t *testing.T) {
	mailer := &stubMailer{started: make(chan struct{}, 2), release: make(chan struct{})}
	d := billing.NewReceiptDispatcher(billing.ReceiptConfig{Workers: 1, QueueSize: 1}, mailer, nil, nil, nil)

	require.True(t, d.Schedule(sampleReceipt("inv-a")))
	<-mailer.started // el worker tomó inv-a y está bloqueado en Send
	require.True(t, d.Schedule(sampleReceipt("inv-b")))
	assert.False(t, d.Schedule(sampleReceipt("inv-c")), "cola llena")

	close(mailer.release)
	d.Close()
	assert.Len(t, mailer.all(), 2)
}

func TestReceiptDispatcher_ScheduleAfterClose(t *testing.T) {
	d := billing.NewReceiptDispatcher(billing.ReceiptConfig{Workers: 1, QueueSize: 1}, &stubMailer{}, nil, nil, nil)
	d.Close()
	d.Close()
	assert.False(t, d.Schedule(sampleReceipt("late")))
}

func TestRenderReceiptHTML_EscapesAndFormats(t *testing.T) {
	body, err := billing.RenderReceiptHTML(sampleReceipt("inv-9"), "$")
	require.NoError(t, err)
	assert.Contains(t, body, "inv-9")
	assert.Contains(t, body, "$150.00")
	assert.Contains(t, body, "2024-05-01 10:30")
	assert.Contains(t, body, "Asha &lt;b&gt;")
	assert.False(t, strings.Contains(body, "Asha <b>"))
}
