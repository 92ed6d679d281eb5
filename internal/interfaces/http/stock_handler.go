package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/application/inventory"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

// StockHandler vista previa de asignaciones FIFO (no modifica stock).
type StockHandler struct {
	allocator *inventory.AllocatorUseCase
	log       *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(allocator *inventory.AllocatorUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{allocator: allocator, log: log}
}

// Allocate POST /api/stock/allocate
func (h *StockHandler) Allocate(c *fiber.Ctx) error {
	var in dto.AllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, h.log, err)
	}
	plan, err := h.allocator.Allocate(c.UserContext(), in.ProductName, in.CompanyID, in.Quantity)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(inventory.ToAllocationResponse(plan))
}
