package repository

import (
	"context"

	"github.com/jhoicas/smartpos-api/internal/domain/entity"
)

// StockRepository es el Inventory Store: única vía para mutar Product.stock.
type StockRepository interface {
	// Reserve descuenta quantity solo si stock >= quantity y el producto está activo,
	// en una única operación atómica. Devuelve el producto tal como quedó tras la
	// reserva (su Price es el precio observado en ese instante) y ok=false si la
	// condición no se cumplió.
	Reserve(ctx context.Context, productID string, quantity int) (product *entity.Product, ok bool, err error)
	// Restock suma quantity al stock. found=false si el producto no existe.
	Restock(ctx context.Context, productID string, quantity int) (stock int, found bool, err error)
}
