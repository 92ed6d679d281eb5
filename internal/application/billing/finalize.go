package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
	"github.com/jhoicas/facturacion-lotes/pkg/logger"
)

// BillHeader datos del cliente de la factura.
type BillHeader struct {
	CustomerName    string
	CustomerMobile  string
	CustomerAddress string
}

// FinalizeResult factura creada y sus datos de impresión.
type FinalizeResult struct {
	BillID   string
	Number   int64
	BillData *BillData
}

// FinalizeUseCase persiste la factura y descuenta el stock en una sola transacción.
type FinalizeUseCase struct {
	txRunner BillingTxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewFinalizeUseCase construye el caso de uso.
func NewFinalizeUseCase(txRunner BillingTxRunner, log *logger.Logger) *FinalizeUseCase {
	return &FinalizeUseCase{txRunner: txRunner, log: log, now: time.Now}
}

// Finalize guarda la factura con las líneas del acumulador y descuenta cada lote. Cada lote
// se relee bloqueado; si ya no tiene las unidades de su línea la transacción completa se
// revierte con *domain.ConcurrentModificationError. Los lotes que quedan en cero se archivan
// y se registran en el historial. El acumulador no se modifica: limpiarlo es tarea del llamador.
func (uc *FinalizeUseCase) Finalize(ctx context.Context, header BillHeader, acc *Accumulator) (*FinalizeResult, error) {
	header.CustomerName = strings.TrimSpace(header.CustomerName)
	header.CustomerMobile = strings.TrimSpace(header.CustomerMobile)
	header.CustomerAddress = strings.TrimSpace(header.CustomerAddress)
	if acc == nil || acc.Len() == 0 {
		return nil, domain.NewValidationError("items", "la factura no tiene líneas")
	}
	if header.CustomerName == "" {
		return nil, domain.NewValidationError("customer_name", "es obligatorio")
	}

	now := uc.now()
	totals := acc.Totals()
	bill := &entity.Bill{
		ID:              uuid.New().String(),
		CustomerName:    header.CustomerName,
		CustomerMobile:  header.CustomerMobile,
		CustomerAddress: header.CustomerAddress,
		BillDate:        now,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		TotalAmount:     totals.Total,
		LineItems:       acc.Items(),
		CreatedAt:       now,
	}

	var archived int
	err := uc.txRunner.RunBilling(ctx, func(
		batches repository.BatchRepository,
		history repository.BatchHistoryRepository,
		bills repository.BillRepository,
		companies repository.CompanyRepository,
	) error {
		archived = 0
		if err := bills.Create(ctx, bill); err != nil {
			return err
		}
		for _, li := range bill.LineItems {
			b, err := batches.GetForUpdate(ctx, li.BatchID)
			if err != nil {
				return err
			}
			if b == nil {
				return &domain.ConcurrentModificationError{BatchID: li.BatchID, Requested: li.Quantity}
			}
			if b.UnitsRemaining < li.Quantity {
				return &domain.ConcurrentModificationError{BatchID: b.ID, Requested: li.Quantity, Remaining: b.UnitsRemaining}
			}

			remaining := b.UnitsRemaining - li.Quantity
			var archivedAt *time.Time
			if remaining == 0 {
				archivedAt = &now
			}
			if err := batches.UpdateUnits(ctx, b.ID, remaining, archivedAt, now); err != nil {
				return err
			}
			if remaining > 0 {
				continue
			}

			companyName := ""
			c, err := companies.GetByID(ctx, b.CompanyID)
			if err != nil {
				return err
			}
			if c != nil {
				companyName = c.Name
			}
			if err := history.Create(ctx, &entity.BatchHistory{
				ID:              uuid.New().String(),
				BatchID:         b.ID,
				ProductName:     b.ProductName,
				BatchCode:       b.BatchCode,
				CompanyName:     companyName,
				InitialUnits:    b.InitialUnits,
				ManufactureDate: b.ManufactureDate,
				ExpiryDate:      b.ExpiryDate,
				EmptiedDate:     now,
				CreatedAt:       now,
			}); err != nil {
				return err
			}
			archived++
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("customer", header.CustomerName).Msg("finalización revertida")
		return nil, err
	}

	uc.log.Info().Str("bill_id", bill.ID).Int64("number", bill.Number).Int("lines", len(bill.LineItems)).
		Int("archived_batches", archived).Str("total", bill.TotalAmount.StringFixed(2)).Msg("factura finalizada")
	return &FinalizeResult{
		BillID:   bill.ID,
		Number:   bill.Number,
		BillData: NewBillData(bill, acc.TaxRate()),
	}, nil
}
