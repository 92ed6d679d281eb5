package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/application/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

// IdentifierHandler registro de prefijos de producto.
type IdentifierHandler struct {
	uc  *inventory.IdentifierUseCase
	log *logger.Logger
}

// NewIdentifierHandler construye el handler.
func NewIdentifierHandler(uc *inventory.IdentifierUseCase, log *logger.Logger) *IdentifierHandler {
	return &IdentifierHandler{uc: uc, log: log}
}

func toIdentifierResponse(p *entity.ProductIdentifier) dto.IdentifierResponse {
	return dto.IdentifierResponse{ID: p.ID, ProductName: p.ProductName, Prefix: p.Prefix}
}

// List GET /api/identifiers?search=
func (h *IdentifierHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.IdentifierResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toIdentifierResponse(p))
	}
	return c.JSON(out)
}

// Peek prefijo registrado o el que se asignaría, sin registrar.
// GET /api/identifiers/peek?product_name=
func (h *IdentifierHandler) Peek(c *fiber.Ctx) error {
	prefix, err := h.uc.PeekPrefix(c.UserContext(), c.Query("product_name"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"prefix": prefix})
}

// UpdatePrefix cambia el prefijo y reescribe los códigos de lote del producto.
// PUT /api/identifiers/:id
func (h *IdentifierHandler) UpdatePrefix(c *fiber.Ctx) error {
	var in dto.UpdatePrefixRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, h.log, err)
	}
	p, n, err := h.uc.UpdatePrefix(c.UserContext(), c.Params("id"), in.Prefix)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.UpdatePrefixResponse{IdentifierResponse: toIdentifierResponse(p), RewrittenBatches: n})
}

// Delete DELETE /api/identifiers/:id
func (h *IdentifierHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteIdentifier(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
