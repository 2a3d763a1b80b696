package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartpos-api/internal/application/dto"
	"github.com/jhoicas/smartpos-api/internal/application/pricing"
)

// PricingHandler precios, historial y escaneo de bajadas.
type PricingHandler struct {
	ledger  *pricing.LedgerUseCase
	scanner *pricing.ScanDropsUseCase
}

// NewPricingHandler construye el handler.
func NewPricingHandler(ledger *pricing.LedgerUseCase, scanner *pricing.ScanDropsUseCase) *PricingHandler {
	return &PricingHandler{ledger: ledger, scanner: scanner}
}

// UpdatePrice POST /api/pricing/update
func (h *PricingHandler) UpdatePrice(c *fiber.Ctx) error {
	var in dto.UpdatePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.UpdatePrice(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History GET /api/pricing/:productId/history
func (h *PricingHandler) History(c *fiber.Ctx) error {
	out, err := h.ledger.ListHistory(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ScanDrops GET /api/price-drops/product/:productId
func (h *PricingHandler) ScanDrops(c *fiber.Ctx) error {
	out, err := h.scanner.Scan(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
