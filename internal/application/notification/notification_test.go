package notification_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartpos-api/internal/application/billing"
	"github.com/jhoicas/smartpos-api/internal/application/dto"
	"github.com/jhoicas/smartpos-api/internal/application/notification"
	"github.com/jhoicas/smartpos-api/internal/application/ports"
	"github.com/jhoicas/smartpos-api/internal/application/pricing"
	"github.com/jhoicas/smartpos-api/internal/domain"
	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
	"github.com/jhoicas/smartpos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type stubMailer struct {
	mu     sync.Mutex
	failTo map[string]bool
	sent   []string
	bodies []string
}

func (m *stubMailer) Send(_ context.Context, to, _, body string, _ ...ports.Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTo[to] {
		return errors.New("mailbox unavailable")
	}
	m.sent = append(m.sent, to)
	m.bodies = append(m.bodies, body)
	return nil
}

type stubLocker struct {
	busy     bool
	released []string
}

func (l *stubLocker) TryLock(context.Context, string, time.Duration) (string, bool, error) {
	if l.busy {
		return "", false, nil
	}
	return "tok", true, nil
}

func (l *stubLocker) Release(_ context.Context, key, _ string) error {
	l.released = append(l.released, key)
	return nil
}

// failingTransitions falla la primera Transition y delega el resto.
type failingTransitions struct {
	repository.NotificationRepository
	mu     sync.Mutex
	failed bool
}

func (r *failingTransitions) Transition(ctx context.Context, id, status string, sentAt *time.Time) (bool, error) {
	r.mu.Lock()
	first := !r.failed
	r.failed = true
	r.mu.Unlock()
	if first {
		return false, errors.New("conexión perdida")
	}
	return r.NotificationRepository.Transition(ctx, id, status, sentAt)
}

type fixture struct {
	store    *memory.Store
	product  *entity.Product
	generate *notification.GenerateUseCase
	ledger   *pricing.LedgerUseCase
}

// newFixture producto a 150 comprado por los clientes dados y luego rebajado a 100.
func newFixture(t *testing.T, emails ...string) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	p := &entity.Product{
		ID: uuid.New().String(), SKU: "TEA", Name: "Masala Tea",
		Price: decimal.NewFromInt(150), Stock: 100, Active: true, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Products().Create(ctx, p))

	invoices := billing.NewCreateInvoiceUseCase(store, store.Products(), store.Customers(), store.Invoices(), nil, nil, nil)
	for i, email := range emails {
		c := &entity.Customer{ID: uuid.New().String(), Name: "Cliente", Phone: uuid.New().String(), Email: email}
		if i == 0 {
			c.Name = "Asha"
		}
		require.NoError(t, store.Customers().Create(ctx, c))
		_, err := invoices.CreateInvoice(ctx, dto.CreateInvoiceRequest{
			CustomerID: c.ID,
			Items:      []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	ledger := pricing.NewLedgerUseCase(store, store.Products(), store.PriceHistory(), nil, nil, nil)
	_, err := ledger.UpdatePrice(ctx, dto.UpdatePriceRequest{ProductID: p.ID, NewPrice: decimal.NewFromInt(100)})
	require.NoError(t, err)

	scanner := pricing.NewScanDropsUseCase(store.Products(), store.Invoices())
	return &fixture{
		store:    store,
		product:  p,
		generate: notification.NewGenerateUseCase(scanner, store.Notifications(), "₹", nil, nil),
		ledger:   ledger,
	}
}

func (f *fixture) dispatcher(mailer ports.Mailer, locker ports.Locker) *notification.DispatchUseCase {
	return notification.NewDispatchUseCase(f.store.Notifications(), mailer, locker, notification.DispatchConfig{Subject: "Price Drop"}, nil, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_IsIdempotent(t *testing.T) {
	f := newFixture(t, "asha@example.com")
	ctx := context.Background()

	first, err := f.generate.Generate(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Eligible)
	assert.Equal(t, 1, first.Created)

	second, err := f.generate.Generate(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Skipped)

	list, err := f.generate.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	n := list[0]
	assert.Equal(t, entity.NotificationPending, n.Status)
	assert.True(t, n.OldPrice.Equal(decimal.NewFromInt(150)))
	assert.True(t, n.NewPrice.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "asha@example.com", n.Email)
	assert.Nil(t, n.SentAt)
}

func TestGenerate_ConcurrentRunsCreateOnce(t *testing.T) {
	f := newFixture(t, "asha@example.com", "b@example.com")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.generate.Generate(ctx, f.product.ID)
		}()
	}
	wg.Wait()

	list, err := f.generate.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGenerate_NewDropCreatesNewNotification(t *testing.T) {
	f := newFixture(t, "asha@example.com")
	ctx := context.Background()

	_, err := f.generate.Generate(ctx, f.product.ID)
	require.NoError(t, err)
	_, err = f.ledger.UpdatePrice(ctx, dto.UpdatePriceRequest{ProductID: f.product.ID, NewPrice: decimal.NewFromInt(80)})
	require.NoError(t, err)

	out, err := f.generate.Generate(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Created)

	list, err := f.generate.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGenerate_UnknownProduct(t *testing.T) {
	f := newFixture(t)
	_, err := f.generate.Generate(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRenderMessage(t *testing.T) {
	msg := notification.RenderMessage("Asha", "Masala Tea", decimal.NewFromInt(150), decimal.NewFromInt(100), "₹")
	assert.Equal(t,
		"Hello Asha,\n\nGood news! The price of Masala Tea has dropped.\nOld Price: ₹150.00\nNew Price: ₹100.00\n\nVisit again to grab the deal! 🔥\n",
		msg)
}

// ──────────────────────────────────────────────────────────────────────────────
// DispatchPending
// ──────────────────────────────────────────────────────────────────────────────

func TestDispatch_SentFailedAndMonotonic(t *testing.T) {
	f := newFixture(t, "asha@example.com", "", "bounce@example.com")
	ctx := context.Background()
	_, err := f.generate.Generate(ctx, f.product.ID)
	require.NoError(t, err)

	mailer := &stubMailer{failTo: map[string]bool{"bounce@example.com": true}}
	d := f.dispatcher(mailer, nil)

	out, err := d.DispatchPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Pending)
	assert.Equal(t, 1, out.Sent)
	assert.Equal(t, 2, out.Failed)
	assert.Equal(t, []string{"asha@example.com"}, mailer.sent)
	require.Len(t, mailer.bodies, 1)
	assert.Contains(t, mailer.bodies[0], "Hello Asha,<br>")

	list, err := f.generate.List(ctx)
	require.NoError(t, err)
	byStatus := map[string]int{}
	for _, n := range list {
		byStatus[n.Status]++
		if n.Status == entity.NotificationSent {
			assert.NotNil(t, n.SentAt)
		} else {
			assert.Nil(t, n.SentAt)
		}
	}
	assert.Equal(t, map[string]int{entity.NotificationSent: 1, entity.NotificationFailed: 2}, byStatus)

	// Terminales: un segundo despacho no hace nada y no reintenta FAILED.
	again, err := d.DispatchPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.DispatchResponse{}, *again)
	assert.Len(t, mailer.sent, 1)

	// Regenerar no reencola las ya enviadas o fallidas.
	gen, err := f.generate.Generate(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gen.Created)
}

func TestDispatch_LockBusy(t *testing.T) {
	f := newFixture(t, "asha@example.com")
	_, err := f.generate.Generate(context.Background(), f.product.ID)
	require.NoError(t, err)

	mailer := &stubMailer{}
	_, err = f.dispatcher(mailer, &stubLocker{busy: true}).DispatchPending(context.Background())
	assert.ErrorIs(t, err, domain.ErrDispatchInProgress)
	assert.Empty(t, mailer.sent)

	locker := &stubLocker{}
	out, err := f.dispatcher(mailer, locker).DispatchPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Sent)
	assert.Len(t, locker.released, 1)
}

func TestDispatch_TransitionErrorKeepsBatchGoing(t *testing.T) {
	f := newFixture(t, "asha@example.com", "b@example.com")
	ctx := context.Background()
	_, err := f.generate.Generate(ctx, f.product.ID)
	require.NoError(t, err)

	repo := &failingTransitions{NotificationRepository: f.store.Notifications()}
	mailer := &stubMailer{}
	d := notification.NewDispatchUseCase(repo, mailer, nil, notification.DispatchConfig{Subject: "Price Drop"}, nil, nil)

	out, err := d.DispatchPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.DispatchResponse{Pending: 2, Sent: 1, Errored: 1}, *out)
	assert.Len(t, mailer.sent, 2)

	// La fila con error sigue PENDING; la otra quedó SENT.
	pending, err := f.store.Notifications().ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestNotificationTransitions(t *testing.T) {
	assert.True(t, entity.CanTransition(entity.NotificationPending, entity.NotificationSent))
	assert.True(t, entity.CanTransition(entity.NotificationPending, entity.NotificationFailed))
	assert.False(t, entity.CanTransition(entity.NotificationSent, entity.NotificationFailed))
	assert.False(t, entity.CanTransition(entity.NotificationFailed, entity.NotificationSent))
	assert.False(t, entity.CanTransition(entity.NotificationFailed, entity.NotificationPending))
	assert.False(t, entity.CanTransition(entity.NotificationPending, entity.NotificationPending))
}
