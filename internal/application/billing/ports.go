package billing

import (
	"context"

	"github.com/jhoicas/facturacion-lotes/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repos que toca la finalización.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		historyRepo repository.BatchHistoryRepository,
		billRepo repository.BillRepository,
		companyRepo repository.CompanyRepository,
	) error) error
}

// InvoiceRenderer genera la representación gráfica (PDF) de una factura.
type InvoiceRenderer interface {
	RenderBill(ctx context.Context, data *BillData) ([]byte, error)
}
