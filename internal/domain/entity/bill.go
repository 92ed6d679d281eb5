package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill factura finalizada. Se crea solo al finalizar y no se modifica después.
type Bill struct {
	ID              string
	Number          int64 // consecutivo visible ("Bill #12"), lo asigna el almacén
	CustomerName    string
	CustomerMobile  string
	CustomerAddress string
	BillDate        time.Time
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	TotalAmount     decimal.Decimal
	LineItems       []LineItem
	CreatedAt       time.Time
}

// ItemCount suma de unidades de todas las líneas.
func (b *Bill) ItemCount() int {
	n := 0
	for _, li := range b.LineItems {
		n += li.Quantity
	}
	return n
}

// LineItem línea de factura atada a un único lote.
type LineItem struct {
	BatchID     string          `json:"batch_id"`
	BatchCode   string          `json:"batch_code"`
	ProductName string          `json:"product_name"`
	HSNCode     string          `json:"hsn_code"`
	Quantity    int             `json:"quantity"`
	UnitRate    decimal.Decimal `json:"unit_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
}
