package billing

import (
	"time"

	"github.com/jhoicas/facturacion-lotes/internal/domain/billing"
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// BillData todo lo que necesita el renderizador de facturas.
type BillData struct {
	ID              string
	Number          int64 // 0 en borradores
	Date            time.Time
	CustomerName    string
	CustomerMobile  string
	CustomerAddress string
	Items           []BillDataItem
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	TaxRate         decimal.Decimal
	Total           decimal.Decimal
	TotalInWords    string
}

// BillDataItem línea impresa.
type BillDataItem struct {
	Name      string
	BatchCode string
	HSNCode   string
	Quantity  int
	Rate      decimal.Decimal
	Total     decimal.Decimal
}

// Draft indica si es la vista previa de una factura sin finalizar.
func (d *BillData) Draft() bool { return d.Number == 0 }

func billDataItems(items []entity.LineItem) []BillDataItem {
	out := make([]BillDataItem, 0, len(items))
	for _, li := range items {
		out = append(out, BillDataItem{
			Name:      li.ProductName,
			BatchCode: li.BatchCode,
			HSNCode:   li.HSNCode,
			Quantity:  li.Quantity,
			Rate:      li.UnitRate,
			Total:     li.LineTotal,
		})
	}
	return out
}

// NewBillData arma los datos de impresión de una factura guardada.
func NewBillData(b *entity.Bill, taxRate decimal.Decimal) *BillData {
	return &BillData{
		ID:              b.ID,
		Number:          b.Number,
		Date:            b.BillDate,
		CustomerName:    b.CustomerName,
		CustomerMobile:  b.CustomerMobile,
		CustomerAddress: b.CustomerAddress,
		Items:           billDataItems(b.LineItems),
		Subtotal:        b.Subtotal,
		Tax:             b.Tax,
		TaxRate:         taxRate,
		Total:           b.TotalAmount,
		TotalInWords:    billing.AmountInWords(b.TotalAmount),
	}
}

// NewDraftBillData arma la vista previa de la factura en composición.
func NewDraftBillData(header BillHeader, acc *Accumulator, now time.Time) *BillData {
	t := acc.Totals()
	return &BillData{
		Date:            now,
		CustomerName:    header.CustomerName,
		CustomerMobile:  header.CustomerMobile,
		CustomerAddress: header.CustomerAddress,
		Items:           billDataItems(acc.Items()),
		Subtotal:        t.Subtotal,
		Tax:             t.Tax,
		TaxRate:         acc.TaxRate(),
		Total:           t.Total,
		TotalInWords:    billing.AmountInWords(t.Total),
	}
}
