package http

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/application/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BatchHandler entradas de stock, inventario e importación/exportación.
type BatchHandler struct {
	receive     *inventory.ReceiveBatchUseCase
	codes       *inventory.BatchCodeUseCase
	spreadsheet *inventory.SpreadsheetUseCase
	log         *logger.Logger
}

// NewBatchHandler construye el handler.
func NewBatchHandler(
	receive *inventory.ReceiveBatchUseCase,
	codes *inventory.BatchCodeUseCase,
	spreadsheet *inventory.SpreadsheetUseCase,
	log *logger.Logger,
) *BatchHandler {
	return &BatchHandler{receive: receive, codes: codes, spreadsheet: spreadsheet, log: log}
}

// Receive da de alta un lote.
// POST /api/batches
func (h *BatchHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, h.log, err)
	}
	b, err := h.receive.ReceiveFromRequest(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToBatchResponse(b, ""))
}

// List GET /api/batches?search=&company_id=&include_empty=
func (h *BatchHandler) List(c *fiber.Ctx) error {
	var q dto.BatchListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(q); err != nil {
		return respondError(c, h.log, err)
	}
	list, err := h.receive.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, inventory.ToBatchResponse(&b.Batch, b.CompanyName))
	}
	return c.JSON(out)
}

// GetByID GET /api/batches/:id
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	b, err := h.receive.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(inventory.ToBatchResponse(b, ""))
}

// Delete DELETE /api/batches/:id
func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	if err := h.receive.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PreviewCode código que recibiría un lote nuevo, sin registrar nada.
// GET /api/batches/code-preview?product_name=&manufacture_date=
func (h *BatchHandler) PreviewCode(c *fiber.Ctx) error {
	var q dto.BatchCodeQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(q); err != nil {
		return respondError(c, h.log, err)
	}
	mfg, err := time.Parse(inventory.DateLayout, q.ManufactureDate)
	if err != nil {
		return respondError(c, h.log, domain.NewValidationError("manufacture_date", "fecha inválida"))
	}
	code, prefix, err := h.codes.Preview(c.UserContext(), q.ProductName, mfg)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.BatchCodeResponse{BatchCode: code, Prefix: prefix})
}

// ProductNames productos con stock de una empresa.
// GET /api/batches/products?company_id=
func (h *BatchHandler) ProductNames(c *fiber.Ctx) error {
	companyID := c.Query("company_id")
	if companyID == "" {
		return respondError(c, h.log, domain.NewValidationError("company_id", "es obligatorio"))
	}
	names, err := h.receive.ProductNames(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(names)
}

// Import planilla .xlsx en el campo multipart "file".
// POST /api/batches/import
func (h *BatchHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondError(c, h.log, domain.NewValidationError("file", "es obligatorio"))
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer f.Close()

	out, err := h.spreadsheet.Import(c.UserContext(), f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Export inventario filtrado como .xlsx.
// GET /api/batches/export
func (h *BatchHandler) Export(c *fiber.Ctx) error {
	var q dto.BatchListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	var buf bytes.Buffer
	if err := h.spreadsheet.Export(c.UserContext(), &buf, q); err != nil {
		return respondError(c, h.log, err)
	}
	c.Attachment("inventory_" + time.Now().Format("20060102_150405") + ".xlsx")
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}
