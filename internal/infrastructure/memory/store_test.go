package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartpos-api/internal/domain"
	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
	"github.com/jhoicas/smartpos-api/internal/infrastructure/memory"
)

func seed(t *testing.T, store *memory.Store, id string, stock int) {
	t.Helper()
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		ID: id, SKU: "SKU-" + id, Name: id, Price: decimal.NewFromInt(10), Stock: stock, Active: true, CreatedAt: time.Now(),
	}))
}

func TestRunBilling_RollbackOnError(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "p1", 5)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.RunBilling(ctx, func(stock repository.StockRepository, invoices repository.InvoiceRepository) error {
		_, ok, err := stock.Reserve(ctx, "p1", 3)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, invoices.Create(ctx, &entity.Invoice{ID: "inv-1", TotalAmount: decimal.NewFromInt(30)}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
	inv, err := store.Invoices().GetByID(ctx, "inv-1")
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestReserve_ConditionalDecrement(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "p1", 2)
	ctx := context.Background()
	stock := store.Stock()

	_, ok, err := stock.Reserve(ctx, "p1", 3)
	require.NoError(t, err)
	assert.False(t, ok)

	p, ok, err := stock.Reserve(ctx, "p1", 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, p.Stock)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(10)))

	_, ok, err = stock.Reserve(ctx, "missing", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNotifications_CreateIfAbsentAndTransition(t *testing.T) {
	store := memory.NewStore()
	repo := store.Notifications()
	ctx := context.Background()
	n := &entity.Notification{
		ID: "n1", CustomerID: "c", ProductID: "p",
		OldPrice: decimal.NewFromInt(150), NewPrice: decimal.NewFromInt(100),
		Status: entity.NotificationPending, CreatedAt: time.Now(),
	}

	created, err := repo.CreateIfAbsent(ctx, n)
	require.NoError(t, err)
	assert.True(t, created)

	dup := *n
	dup.ID = "n2"
	dup.OldPrice = decimal.RequireFromString("150.00")
	created, err = repo.CreateIfAbsent(ctx, &dup)
	require.NoError(t, err)
	assert.False(t, created)

	now := time.Now()
	applied, err := repo.Transition(ctx, "n1", entity.NotificationSent, &now)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = repo.Transition(ctx, "n1", entity.NotificationFailed, nil)
	require.NoError(t, err)
	assert.False(t, applied, "SENT es terminal")

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCustomers_UniquePhoneAndEmail(t *testing.T) {
	repo := memory.NewStore().Customers()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Customer{ID: "1", Name: "A", Phone: "111"}))
	require.NoError(t, repo.Create(ctx, &entity.Customer{ID: "2", Name: "B", Phone: "222"}), "dos clientes sin email")
	require.NoError(t, repo.Create(ctx, &entity.Customer{ID: "3", Name: "C", Phone: "333", Email: "c@x.io"}))

	assert.ErrorIs(t, repo.Create(ctx, &entity.Customer{ID: "4", Name: "D", Phone: "111"}), domain.ErrAlreadyExists)
	assert.ErrorIs(t, repo.Create(ctx, &entity.Customer{ID: "5", Name: "E", Phone: "555", Email: "c@x.io"}), domain.ErrAlreadyExists)
}

func TestDeactivate_BlocksReserve(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "p1", 5)
	ctx := context.Background()

	found, err := store.Products().Deactivate(ctx, "p1", time.Now())
	require.NoError(t, err)
	assert.True(t, found)

	_, ok, err := store.Stock().Reserve(ctx, "p1", 1)
	require.NoError(t, err)
	assert.False(t, ok)

	found, err = store.Products().Deactivate(ctx, "missing", time.Now())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvoiceItems_OrderedByLineNo(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, "p1", 5)
	seed(t, store, "p2", 5)
	ctx := context.Background()
	invoices := store.Invoices()

	require.NoError(t, invoices.Create(ctx, &entity.Invoice{ID: "inv-1", TotalAmount: decimal.NewFromInt(20)}))
	require.NoError(t, invoices.CreateItem(ctx, &entity.InvoiceItem{ID: "it-2", InvoiceID: "inv-1", LineNo: 2, ProductID: "p1", Quantity: 1}))
	require.NoError(t, invoices.CreateItem(ctx, &entity.InvoiceItem{ID: "it-1", InvoiceID: "inv-1", LineNo: 1, ProductID: "p2", Quantity: 1}))

	items, err := invoices.GetItemsByInvoiceID(ctx, "inv-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "it-1", items[0].ID)
	assert.Equal(t, "it-2", items[1].ID)
}
