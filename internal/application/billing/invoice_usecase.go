package billing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/application/dto"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
	"github.com/shopspring/decimal"
)

// InvoiceUseCase representación gráfica (PDF) de facturas finalizadas y de la factura en curso.
type InvoiceUseCase struct {
	billRepo repository.BillRepository
	renderer InvoiceRenderer
	billsDir string
	taxRate  decimal.Decimal
	log      *logger.Logger
	now      func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. billsDir es la carpeta donde se guardan los PDF.
func NewInvoiceUseCase(
	billRepo repository.BillRepository,
	renderer InvoiceRenderer,
	billsDir string,
	taxRate decimal.Decimal,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		billRepo: billRepo,
		renderer: renderer,
		billsDir: billsDir,
		taxRate:  taxRate,
		log:      log,
		now:      time.Now,
	}
}

// FileName nombre del PDF: Bill_<número>_<yyyymmdd_hhmmss>.pdf.
func FileName(number int64, at time.Time) string {
	return fmt.Sprintf("Bill_%d_%s.pdf", number, at.Format("20060102_150405"))
}

// SaveBill genera el PDF de una factura recién finalizada y lo escribe en la carpeta de facturas.
// Devuelve la ruta del archivo.
func (uc *InvoiceUseCase) SaveBill(ctx context.Context, data *BillData) (string, error) {
	pdf, err := uc.renderer.RenderBill(ctx, data)
	if err != nil {
		return "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	if err := os.MkdirAll(uc.billsDir, 0o755); err != nil {
		return "", fmt.Errorf("pdf: crear carpeta: %w", err)
	}
	path := filepath.Join(uc.billsDir, FileName(data.Number, uc.now()))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("pdf: escribir archivo: %w", err)
	}
	uc.log.Info().Int64("number", data.Number).Str("path", path).Msg("factura guardada")
	return path, nil
}

// Get factura finalizada por ID.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*entity.Bill, error) {
	b, err := uc.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// Reprint vuelve a generar el PDF de una factura guardada. Las líneas pasan por el codec del
// repositorio: datos corruptos devuelven *domain.CorruptDataError.
func (uc *InvoiceUseCase) Reprint(ctx context.Context, id string) (pdf []byte, filename string, err error) {
	b, err := uc.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err = uc.renderer.RenderBill(ctx, NewBillData(b, uc.taxRate))
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdf, FileName(b.Number, b.BillDate), nil
}

// Preview PDF de la factura en composición (marcado como borrador).
func (uc *InvoiceUseCase) Preview(ctx context.Context, header BillHeader, acc *Accumulator) ([]byte, error) {
	if acc.Len() == 0 {
		return nil, domain.NewValidationError("items", "la factura no tiene líneas")
	}
	return uc.renderer.RenderBill(ctx, NewDraftBillData(header, acc, uc.now()))
}

// ToLineItemResponses convierte líneas a DTO, con su índice.
func ToLineItemResponses(items []entity.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for i, li := range items {
		out = append(out, dto.LineItemResponse{
			Index:       i,
			BatchID:     li.BatchID,
			BatchCode:   li.BatchCode,
			ProductName: li.ProductName,
			HSNCode:     li.HSNCode,
			Quantity:    li.Quantity,
			UnitRate:    li.UnitRate,
			LineTotal:   li.LineTotal,
		})
	}
	return out
}

// ToBillResponse convierte una factura a su DTO.
func ToBillResponse(b *entity.Bill) dto.BillResponse {
	return dto.BillResponse{
		ID:              b.ID,
		Number:          b.Number,
		CustomerName:    b.CustomerName,
		CustomerMobile:  b.CustomerMobile,
		CustomerAddress: b.CustomerAddress,
		BillDate:        b.BillDate,
		Items:           ToLineItemResponses(b.LineItems),
		Subtotal:        b.Subtotal,
		Tax:             b.Tax,
		Total:           b.TotalAmount,
	}
}
