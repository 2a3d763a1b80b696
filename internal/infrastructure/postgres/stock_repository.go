package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Reserve descuento condicional en una sola sentencia: dos reservas concurrentes sobre la misma
// fila se serializan en el UPDATE y la segunda reevalúa stock >= $2.
func (r *StockRepo) Reserve(ctx context.Context, productID string, quantity int) (*entity.Product, bool, error) {
	if !isUUID(productID) {
		return nil, false, nil
	}
	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND active AND stock >= $2
		RETURNING ` + productColumns
	p, err := scanProduct(r.q.QueryRow(ctx, query, productID, quantity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reserve stock: %w", err)
	}
	return p, true, nil
}

// Restock suma quantity al stock.
func (r *StockRepo) Restock(ctx context.Context, productID string, quantity int) (int, bool, error) {
	if !isUUID(productID) {
		return 0, false, nil
	}
	var stock int
	err := r.q.QueryRow(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1 RETURNING stock`,
		productID, quantity,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, mapWriteError("restock", err)
	}
	return stock, true, nil
}
