package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemResponse línea de la factura en curso o finalizada.
type LineItemResponse struct {
	Index       int             `json:"index"`
	BatchID     string          `json:"batch_id"`
	BatchCode   string          `json:"batch_code"`
	ProductName string          `json:"product_name"`
	HSNCode     string          `json:"hsn_code"`
	Quantity    int             `json:"quantity"`
	UnitRate    decimal.Decimal `json:"unit_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// BillDraftResponse estado de la factura en curso.
type BillDraftResponse struct {
	Items    []LineItemResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Tax      decimal.Decimal    `json:"tax"`
	Total    decimal.Decimal    `json:"total"`
}

// FinalizeBillRequest body de POST /api/bill/finalize.
type FinalizeBillRequest struct {
	CustomerName    string `json:"customer_name" validate:"required,max=200"`
	CustomerMobile  string `json:"customer_mobile" validate:"omitempty,numeric,max=15"`
	CustomerAddress string `json:"customer_address" validate:"max=500"`
}

// FinalizeBillResponse factura creada.
type FinalizeBillResponse struct {
	BillID  string          `json:"bill_id"`
	Number  int64           `json:"number"`
	Total   decimal.Decimal `json:"total"`
	PDFPath string          `json:"pdf_path,omitempty"`
}

// BillResponse factura finalizada.
type BillResponse struct {
	ID              string             `json:"id"`
	Number          int64              `json:"number"`
	CustomerName    string             `json:"customer_name"`
	CustomerMobile  string             `json:"customer_mobile,omitempty"`
	CustomerAddress string             `json:"customer_address,omitempty"`
	BillDate        time.Time          `json:"bill_date"`
	Items           []LineItemResponse `json:"items"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	Tax             decimal.Decimal    `json:"tax"`
	Total           decimal.Decimal    `json:"total"`
}

// SalesReportResponse ventas de un rango de fechas.
type SalesReportResponse struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	BillCount  int             `json:"bill_count"`
	ItemCount  int             `json:"item_count"`
	TotalSales decimal.Decimal `json:"total_sales"`
	Bills      []BillResponse  `json:"bills"`
}
