// Package memory implementa los repositorios en memoria (DB_DRIVER=memory y tests).
// Una transacción toma el candado del store, trabaja sobre una copia del estado y
// la publica solo si fn termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/smartpos-api/internal/application/billing"
	"github.com/jhoicas/smartpos-api/internal/application/pricing"
	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

type state struct {
	products      map[string]*entity.Product
	customers     map[string]*entity.Customer
	invoices      map[string]*entity.Invoice
	items         []*entity.InvoiceItem
	history       []*entity.ProductPriceHistory
	notifications []*entity.Notification
	dedup         map[string]string // DedupKey -> notification ID
}

func newState() *state {
	return &state{
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
		invoices:  make(map[string]*entity.Invoice),
		dedup:     make(map[string]string),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:      make(map[string]*entity.Product, len(s.products)),
		customers:     make(map[string]*entity.Customer, len(s.customers)),
		invoices:      make(map[string]*entity.Invoice, len(s.invoices)),
		items:         make([]*entity.InvoiceItem, 0, len(s.items)),
		history:       make([]*entity.ProductPriceHistory, 0, len(s.history)),
		notifications: make([]*entity.Notification, 0, len(s.notifications)),
		dedup:         make(map[string]string, len(s.dedup)),
	}
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range s.customers {
		cu := *v
		c.customers[k] = &cu
	}
	for k, v := range s.invoices {
		inv := *v
		c.invoices[k] = &inv
	}
	for _, v := range s.items {
		it := *v
		c.items = append(c.items, &it)
	}
	for _, v := range s.history {
		h := *v
		c.history = append(c.history, &h)
	}
	for _, v := range s.notifications {
		c.notifications = append(c.notifications, copyNotification(v))
	}
	for k, v := range s.dedup {
		c.dedup[k] = v
	}
	return c
}

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// scope da acceso al estado: el de la tx si existe, o el vivo bajo el candado.
type scope struct {
	store *Store
	tx    *state
}

func (sc scope) do(fn func(st *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.mu.Lock()
	defer sc.store.mu.Unlock()
	return fn(sc.store.st)
}

// runTx ejecuta fn sobre una copia del estado y la confirma si no hay error.
func (s *Store) runTx(ctx context.Context, fn func(tx *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := s.st.clone()
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// Repositorios sobre el estado vivo.
func (s *Store) Products() repository.ProductRepository           { return &ProductRepo{scope{store: s}} }
func (s *Store) Stock() repository.StockRepository                { return &StockRepo{scope{store: s}} }
func (s *Store) Customers() repository.CustomerRepository         { return &CustomerRepo{scope{store: s}} }
func (s *Store) Invoices() repository.InvoiceRepository           { return &InvoiceRepo{scope{store: s}} }
func (s *Store) PriceHistory() repository.PriceHistoryRepository  { return &PriceHistoryRepo{scope{store: s}} }
func (s *Store) Notifications() repository.NotificationRepository { return &NotificationRepo{scope{store: s}} }

var (
	_ billing.BillingTxRunner = (*Store)(nil)
	_ pricing.PricingTxRunner = (*Store)(nil)
)

// RunBilling implementa billing.BillingTxRunner.
func (s *Store) RunBilling(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return s.runTx(ctx, func(tx *state) error {
		sc := scope{store: s, tx: tx}
		return fn(&StockRepo{sc}, &InvoiceRepo{sc})
	})
}

// RunPricing implementa pricing.PricingTxRunner.
func (s *Store) RunPricing(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	historyRepo repository.PriceHistoryRepository,
) error) error {
	return s.runTx(ctx, func(tx *state) error {
		sc := scope{store: s, tx: tx}
		return fn(&ProductRepo{sc}, &PriceHistoryRepo{sc})
	})
}

func copyNotification(n *entity.Notification) *entity.Notification {
	c := *n
	if n.SentAt != nil {
		t := *n.SentAt
		c.SentAt = &t
	}
	return &c
}
