package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartpos-api/internal/domain"
	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

// InvoiceRepo facturas y líneas en memoria.
type InvoiceRepo struct{ scope }

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.do(func(st *state) error {
		if _, ok := st.invoices[inv.ID]; ok {
			return fmt.Errorf("%w: factura %s", domain.ErrAlreadyExists, inv.ID)
		}
		if inv.CustomerID != "" {
			if _, ok := st.customers[inv.CustomerID]; !ok {
				return domain.NewNotFound(domain.EntityCustomer, inv.CustomerID)
			}
		}
		c := *inv
		st.invoices[inv.ID] = &c
		return nil
	})
}

func (r *InvoiceRepo) CreateItem(_ context.Context, item *entity.InvoiceItem) error {
	return r.do(func(st *state) error {
		if _, ok := st.invoices[item.InvoiceID]; !ok {
			return domain.NewNotFound(domain.EntityInvoice, item.InvoiceID)
		}
		if _, ok := st.products[item.ProductID]; !ok {
			return domain.NewNotFound(domain.EntityProduct, item.ProductID)
		}
		c := *item
		st.items = append(st.items, &c)
		return nil
	})
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.do(func(st *state) error {
		if inv, ok := st.invoices[id]; ok {
			c := *inv
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepo) GetItemsByInvoiceID(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	err := r.do(func(st *state) error {
		for _, it := range st.items {
			if it.InvoiceID == invoiceID {
				c := *it
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].LineNo < out[j].LineNo })
	return out, err
}

func (r *InvoiceRepo) SumLineTotals(_ context.Context, invoiceID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.do(func(st *state) error {
		for _, it := range st.items {
			if it.InvoiceID == invoiceID {
				sum = sum.Add(it.LineTotal)
			}
		}
		return nil
	})
	return sum, err
}

func (r *InvoiceRepo) ListPurchasesByProduct(_ context.Context, productID string) ([]repository.PurchaseRecord, error) {
	var out []repository.PurchaseRecord
	err := r.do(func(st *state) error {
		for _, it := range st.items {
			if it.ProductID != productID {
				continue
			}
			inv := st.invoices[it.InvoiceID]
			if inv == nil || !inv.HasCustomer() {
				continue
			}
			cu := st.customers[inv.CustomerID]
			if cu == nil {
				continue
			}
			out = append(out, repository.PurchaseRecord{
				InvoiceID:        inv.ID,
				InvoiceCreatedAt: inv.CreatedAt,
				CustomerID:       cu.ID,
				CustomerName:     cu.Name,
				CustomerPhone:    cu.Phone,
				CustomerEmail:    cu.Email,
				Quantity:         it.Quantity,
				PriceAtPurchase:  it.PriceAtPurchase,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].InvoiceCreatedAt.Equal(out[j].InvoiceCreatedAt) {
			return out[i].InvoiceCreatedAt.Before(out[j].InvoiceCreatedAt)
		}
		return out[i].InvoiceID < out[j].InvoiceID
	})
	return out, nil
}
