package memory

import (
	"context"
	"time"

	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

// StockRepo descuento condicional y reposición en memoria.
type StockRepo struct{ scope }

var _ repository.StockRepository = (*StockRepo)(nil)

func (r *StockRepo) Reserve(_ context.Context, productID string, quantity int) (*entity.Product, bool, error) {
	var out *entity.Product
	err := r.do(func(st *state) error {
		p, ok := st.products[productID]
		if !ok || !p.Active || quantity <= 0 || p.Stock < quantity {
			return nil
		}
		p.Stock -= quantity
		p.UpdatedAt = time.Now().UTC()
		c := *p
		out = &c
		return nil
	})
	return out, out != nil, err
}

func (r *StockRepo) Restock(_ context.Context, productID string, quantity int) (int, bool, error) {
	var (
		stock int
		found bool
	)
	err := r.do(func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return nil
		}
		p.Stock += quantity
		p.UpdatedAt = time.Now().UTC()
		stock, found = p.Stock, true
		return nil
	})
	return stock, found, err
}
