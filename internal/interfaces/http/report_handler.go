package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-lotes/internal/application/billing"
	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/application/inventory"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

// ReportHandler reportes por rango de fechas.
type ReportHandler struct {
	sales   *billing.SalesReportUseCase
	history *inventory.HistoryReportUseCase
	log     *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(sales *billing.SalesReportUseCase, history *inventory.HistoryReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{sales: sales, history: history, log: log}
}

func (h *ReportHandler) dateRange(c *fiber.Ctx) (dto.DateRangeQuery, error) {
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return q, domain.NewValidationError("query", err.Error())
	}
	return q, dto.Validate(q)
}

// Sales GET /api/reports/sales?from=&to=
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	q, err := h.dateRange(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.sales.Report(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// BatchHistory GET /api/reports/batch-history?from=&to=
func (h *ReportHandler) BatchHistory(c *fiber.Ctx) error {
	q, err := h.dateRange(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.history.Report(c.UserContext(), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
