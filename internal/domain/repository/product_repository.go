package repository

import (
	"context"
	"time"

	"github.com/jhoicas/smartpos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product.
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal, at time.Time) error
	// Deactivate marca el producto como inactivo. found=false si no existe.
	Deactivate(ctx context.Context, id string, at time.Time) (found bool, err error)
}
