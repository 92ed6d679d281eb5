package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

// HistoryReportUseCase reporte de lotes vaciados.
type HistoryReportUseCase struct {
	historyRepo repository.BatchHistoryRepository
}

// NewHistoryReportUseCase construye el caso de uso.
func NewHistoryReportUseCase(historyRepo repository.BatchHistoryRepository) *HistoryReportUseCase {
	return &HistoryReportUseCase{historyRepo: historyRepo}
}

// Report lotes vaciados en el rango, más recientes primero.
func (uc *HistoryReportUseCase) Report(ctx context.Context, q dto.DateRangeQuery) ([]dto.BatchHistoryResponse, error) {
	from, to, err := q.Bounds(time.Local)
	if err != nil {
		return nil, err
	}
	list, err := uc.historyRepo.ListByEmptiedDate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.BatchHistoryResponse{
			BatchID:         h.BatchID,
			ProductName:     h.ProductName,
			BatchCode:       h.BatchCode,
			CompanyName:     h.CompanyName,
			InitialUnits:    h.InitialUnits,
			ManufactureDate: h.ManufactureDate.Format(DateLayout),
			ExpiryDate:      h.ExpiryDate.Format(DateLayout),
			EmptiedDate:     h.EmptiedDate,
		})
	}
	return out, nil
}
