package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartpos-api/internal/domain"
	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

// ProductRepo implementación en memoria de repository.ProductRepository.
type ProductRepo struct{ scope }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.do(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return fmt.Errorf("%w: producto %s", domain.ErrAlreadyExists, p.ID)
		}
		for _, other := range st.products {
			if other.SKU == p.SKU {
				return fmt.Errorf("%w: sku %s", domain.ErrAlreadyExists, p.SKU)
			}
		}
		if p.Stock < 0 || !p.Price.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: precio o stock inválido", domain.ErrInvalidInput)
		}
		c := *p
		c.Price = entity.NormalizePrice(c.Price)
		st.products[p.ID] = &c
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			c := *p
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de una tx el candado del store ya serializa el acceso.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.do(func(st *state) error {
		for _, p := range st.products {
			c := *p
			out = append(out, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, limit, offset), nil
}

func (r *ProductRepo) UpdatePrice(_ context.Context, id string, price decimal.Decimal, at time.Time) error {
	return r.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.NewNotFound(domain.EntityProduct, id)
		}
		p.Price = entity.NormalizePrice(price)
		p.UpdatedAt = at
		return nil
	})
}

func (r *ProductRepo) Deactivate(_ context.Context, id string, at time.Time) (bool, error) {
	var found bool
	err := r.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return nil
		}
		p.Active = false
		p.UpdatedAt = at
		found = true
		return nil
	})
	return found, err
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
