package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// PriceHistoryRepo historial de precios (solo INSERT y SELECT).
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador.
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

func (r *PriceHistoryRepo) Create(ctx context.Context, h *entity.ProductPriceHistory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_price_history (id, product_id, old_price, new_price, changed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		h.ID, h.ProductID, entity.NormalizePrice(h.OldPrice), entity.NormalizePrice(h.NewPrice), h.ChangedAt,
	)
	if err != nil {
		return mapWriteError("insert price history", err)
	}
	return nil
}

func (r *PriceHistoryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductPriceHistory, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, old_price, new_price, changed_at
		FROM product_price_history WHERE product_id = $1 ORDER BY changed_at, id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductPriceHistory
	for rows.Next() {
		var h entity.ProductPriceHistory
		if err := rows.Scan(&h.ID, &h.ProductID, &h.OldPrice, &h.NewPrice, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
