package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartpos-api/internal/application/dto"
	"github.com/jhoicas/smartpos-api/internal/domain"
)

// writeError traduce errores de dominio a status y dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	var (
		notFound *domain.NotFoundError
		stock    *domain.InsufficientStockError
	)
	switch {
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFound.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.As(err, &stock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: stock.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrDispatchInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DISPATCH_IN_PROGRESS", Message: err.Error()})
	case errors.Is(err, domain.ErrDeliveryFailure):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "DELIVERY_FAILURE", Message: err.Error()})
	case errors.Is(err, domain.ErrIntegrityViolation):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTEGRITY_VIOLATION", Message: "error interno"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
