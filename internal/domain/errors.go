package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrAlreadyExists      = errors.New("recurso duplicado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrDeliveryFailure    = errors.New("fallo en la entrega del correo")
	ErrIntegrityViolation = errors.New("violación de integridad")
	ErrDispatchInProgress = errors.New("despacho de notificaciones en curso")
)

// Entidades referenciadas por NotFoundError.
const (
	EntityProduct  = "product"
	EntityCustomer = "customer"
	EntityInvoice  = "invoice"
)

// NotFoundError indica qué entidad no existe. errors.Is(err, ErrNotFound) es true.
type NotFoundError struct {
	Entity string
	ID     string
}

// NewNotFound construye el error para la entidad e ID dados.
func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError la reserva condicional falló para ProductID.
type InsufficientStockError struct {
	ProductID string
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s (solicitado %d)", e.ProductID, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidInput envuelve ErrInvalidInput con un detalle legible.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
