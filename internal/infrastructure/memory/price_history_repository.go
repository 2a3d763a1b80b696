package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

// PriceHistoryRepo historial de precios en memoria (solo inserción).
type PriceHistoryRepo struct{ scope }

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

func (r *PriceHistoryRepo) Create(_ context.Context, h *entity.ProductPriceHistory) error {
	return r.do(func(st *state) error {
		c := *h
		st.history = append(st.history, &c)
		return nil
	})
}

func (r *PriceHistoryRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ProductPriceHistory, error) {
	var out []*entity.ProductPriceHistory
	err := r.do(func(st *state) error {
		for _, h := range st.history {
			if h.ProductID == productID {
				c := *h
				out = append(out, &c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangedAt.Before(out[j].ChangedAt) })
	return out, nil
}
