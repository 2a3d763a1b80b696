package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera; customer_id vacío = NULL.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO invoices (id, customer_id, total_amount, created_at) VALUES ($1, NULLIF($2, '')::uuid, $3, $4)`,
		inv.ID, inv.CustomerID, inv.TotalAmount, inv.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert invoice", err)
	}
	return nil
}

// CreateItem persiste una línea.
func (r *InvoiceRepo) CreateItem(ctx context.Context, it *entity.InvoiceItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoice_items (id, invoice_id, line_no, product_id, quantity, price_at_purchase, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		it.ID, it.InvoiceID, it.LineNo, it.ProductID, it.Quantity, it.PriceAtPurchase, it.LineTotal,
	)
	if err != nil {
		return mapWriteError("insert invoice item", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura. Un id que no es UUID no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var inv entity.Invoice
	err := r.q.QueryRow(ctx,
		`SELECT id, COALESCE(customer_id::text, ''), total_amount, created_at FROM invoices WHERE id = $1`, id,
	).Scan(&inv.ID, &inv.CustomerID, &inv.TotalAmount, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItemsByInvoiceID lista las líneas de una factura en el orden en que se facturaron.
func (r *InvoiceRepo) GetItemsByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	if !isUUID(invoiceID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, line_no, product_id, quantity, price_at_purchase, line_total
		FROM invoice_items WHERE invoice_id = $1 ORDER BY line_no, id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.LineNo, &it.ProductID, &it.Quantity, &it.PriceAtPurchase, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// SumLineTotals Σ line_total de la factura (0 si no tiene líneas).
func (r *InvoiceRepo) SumLineTotals(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(line_total), 0) FROM invoice_items WHERE invoice_id = $1`, invoiceID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum invoice items: %w", err)
	}
	return sum, nil
}

// ListPurchasesByProduct compras del producto con cliente (inner join), en orden de factura.
func (r *InvoiceRepo) ListPurchasesByProduct(ctx context.Context, productID string) ([]repository.PurchaseRecord, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.created_at, c.id, c.name, c.phone, COALESCE(c.email, ''), ii.quantity, ii.price_at_purchase
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		JOIN customers c ON c.id = i.customer_id
		WHERE ii.product_id = $1
		ORDER BY i.created_at, i.id, ii.line_no`, productID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []repository.PurchaseRecord
	for rows.Next() {
		var p repository.PurchaseRecord
		if err := rows.Scan(&p.InvoiceID, &p.InvoiceCreatedAt, &p.CustomerID, &p.CustomerName,
			&p.CustomerPhone, &p.CustomerEmail, &p.Quantity, &p.PriceAtPurchase); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
