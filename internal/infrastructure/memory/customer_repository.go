package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/smartpos-api/internal/domain"
	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/jhoicas/smartpos-api/internal/domain/repository"
)

// CustomerRepo implementación en memoria de repository.CustomerRepository.
type CustomerRepo struct{ scope }

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.do(func(st *state) error {
		for _, other := range st.customers {
			if other.Phone == c.Phone {
				return fmt.Errorf("%w: teléfono %s", domain.ErrAlreadyExists, c.Phone)
			}
			if c.Email != "" && other.Email == c.Email {
				return fmt.Errorf("%w: email %s", domain.ErrAlreadyExists, c.Email)
			}
		}
		cp := *c
		st.customers[c.ID] = &cp
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.do(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			cp := *c
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.do(func(st *state) error {
		for _, c := range st.customers {
			cp := *c
			out = append(out, &cp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, limit, offset), nil
}
