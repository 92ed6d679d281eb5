package billing

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SalesReportUseCase ventas por rango de fechas.
type SalesReportUseCase struct {
	billRepo repository.BillRepository
	loc      *time.Location
}

// NewSalesReportUseCase construye el caso de uso; las fechas se interpretan en hora local.
func NewSalesReportUseCase(billRepo repository.BillRepository) *SalesReportUseCase {
	return &SalesReportUseCase{billRepo: billRepo, loc: time.Local}
}

// Report facturas del rango [from, to] (días completos) con cantidad, unidades y total vendido.
func (uc *SalesReportUseCase) Report(ctx context.Context, q dto.DateRangeQuery) (*dto.SalesReportResponse, error) {
	from, to, err := q.Bounds(uc.loc)
	if err != nil {
		return nil, err
	}

	bills, err := uc.billRepo.ListByDate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := &dto.SalesReportResponse{
		From:       q.From,
		To:         q.To,
		BillCount:  len(bills),
		TotalSales: decimal.Zero,
		Bills:      make([]dto.BillResponse, 0, len(bills)),
	}
	for _, b := range bills {
		out.ItemCount += b.ItemCount()
		out.TotalSales = out.TotalSales.Add(b.TotalAmount)
		out.Bills = append(out.Bills, ToBillResponse(b))
	}
	return out, nil
}
