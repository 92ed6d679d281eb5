package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-lotes/internal/application/billing"
	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/application/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

// BillHandler factura en composición, finalización y facturas guardadas.
type BillHandler struct {
	session   *BillSession
	allocator *inventory.AllocatorUseCase
	finalize  *billing.FinalizeUseCase
	invoices  *billing.InvoiceUseCase
	log       *logger.Logger
}

// NewBillHandler construye el handler.
func NewBillHandler(
	session *BillSession,
	allocator *inventory.AllocatorUseCase,
	finalize *billing.FinalizeUseCase,
	invoices *billing.InvoiceUseCase,
	log *logger.Logger,
) *BillHandler {
	return &BillHandler{
		session:   session,
		allocator: allocator,
		finalize:  finalize,
		invoices:  invoices,
		log:       log,
	}
}

func draftResponse(acc *billing.Accumulator) dto.BillDraftResponse {
	t := acc.Totals()
	return dto.BillDraftResponse{
		Items:    billing.ToLineItemResponses(acc.Items()),
		Subtotal: t.Subtotal,
		Tax:      t.Tax,
		Total:    t.Total,
	}
}

// Draft estado de la factura en curso.
// GET /api/bill
func (h *BillHandler) Draft(c *fiber.Ctx) error {
	var out dto.BillDraftResponse
	_ = h.session.With(func(acc *billing.Accumulator) error {
		out = draftResponse(acc)
		return nil
	})
	return c.JSON(out)
}

// AddItem asigna stock FIFO y lo agrega a la factura en curso. Las unidades ya tomadas por
// la factura no se vuelven a asignar.
// POST /api/bill/items
func (h *BillHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, h.log, err)
	}
	ctx := c.UserContext()

	var out dto.BillDraftResponse
	err := h.session.With(func(acc *billing.Accumulator) error {
		plan, err := h.allocator.AllocateReserved(ctx, in.ProductName, in.CompanyID, in.Quantity, acc.Quantities())
		if err != nil {
			return err
		}
		acc.Add(plan)
		out = draftResponse(acc)
		return nil
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveItem DELETE /api/bill/items/:index
func (h *BillHandler) RemoveItem(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return respondError(c, h.log, domain.NewValidationError("index", "debe ser un entero"))
	}
	var out dto.BillDraftResponse
	err = h.session.With(func(acc *billing.Accumulator) error {
		if err := acc.Remove(index); err != nil {
			return err
		}
		out = draftResponse(acc)
		return nil
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Clear descarta la factura en curso.
// DELETE /api/bill
func (h *BillHandler) Clear(c *fiber.Ctx) error {
	_ = h.session.With(func(acc *billing.Accumulator) error {
		acc.Clear()
		return nil
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// Finalize guarda la factura, descuenta stock y genera el PDF. Si el PDF falla la factura
// queda guardada igual y se puede reimprimir.
// POST /api/bill/finalize
func (h *BillHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeBillRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, h.log, err)
	}
	ctx := c.UserContext()

	var res *billing.FinalizeResult
	err := h.session.With(func(acc *billing.Accumulator) error {
		var err error
		res, err = h.finalize.Finalize(ctx, billing.BillHeader{
			CustomerName:    in.CustomerName,
			CustomerMobile:  in.CustomerMobile,
			CustomerAddress: in.CustomerAddress,
		}, acc)
		if err != nil {
			return err
		}
		acc.Clear()
		return nil
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	out := dto.FinalizeBillResponse{BillID: res.BillID, Number: res.Number, Total: res.BillData.Total}
	path, err := h.invoices.SaveBill(ctx, res.BillData)
	if err != nil {
		h.log.Error().Err(err).Str("bill_id", res.BillID).Msg("no se pudo guardar el PDF")
	} else {
		out.PDFPath = path
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DraftPDF vista previa en PDF de la factura en curso.
// GET /api/bill/draft.pdf?customer_name=&customer_mobile=&customer_address=
func (h *BillHandler) DraftPDF(c *fiber.Ctx) error {
	header := billing.BillHeader{
		CustomerName:    c.Query("customer_name"),
		CustomerMobile:  c.Query("customer_mobile"),
		CustomerAddress: c.Query("customer_address"),
	}
	var pdf []byte
	err := h.session.With(func(acc *billing.Accumulator) error {
		var err error
		pdf, err = h.invoices.Preview(c.UserContext(), header, acc)
		return err
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

// GetBill GET /api/bills/:id
func (h *BillHandler) GetBill(c *fiber.Ctx) error {
	b, err := h.invoices.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(billing.ToBillResponse(b))
}

// BillPDF reimpresión de una factura guardada.
// GET /api/bills/:id/pdf
func (h *BillHandler) BillPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.invoices.Reprint(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}
