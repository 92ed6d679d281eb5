package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveBatchRequest body para POST /api/batches (entrada de stock).
type ReceiveBatchRequest struct {
	ProductName     string          `json:"product_name" validate:"required,max=200"`
	CompanyID       string          `json:"company_id" validate:"required,uuid"`
	HSNCode         string          `json:"hsn_code" validate:"required,max=20"`
	ManufactureDate string          `json:"manufacture_date" validate:"required,datetime=2006-01-02"`
	ExpiryDate      string          `json:"expiry_date" validate:"required,datetime=2006-01-02"`
	Units           int             `json:"units" validate:"gt=0"`
	MRP             decimal.Decimal `json:"mrp"`
	DiscountPct     decimal.Decimal `json:"discount_pct"`
	IGSTPct         decimal.Decimal `json:"igst_pct"`
	CGSTPct         decimal.Decimal `json:"cgst_pct"`
	SGSTPct         decimal.Decimal `json:"sgst_pct"`
}

// BatchCodeQuery query para GET /api/batches/code-preview.
type BatchCodeQuery struct {
	ProductName     string `query:"product_name" validate:"required"`
	ManufactureDate string `query:"manufacture_date" validate:"required,datetime=2006-01-02"`
}

// BatchListQuery filtros de GET /api/batches.
type BatchListQuery struct {
	Search       string `query:"search"`
	CompanyID    string `query:"company_id" validate:"omitempty,uuid"`
	IncludeEmpty bool   `query:"include_empty"`
}

// BatchCodeResponse código de lote sugerido.
type BatchCodeResponse struct {
	BatchCode string `json:"batch_code"`
	Prefix    string `json:"prefix"`
}

// BatchResponse lote en respuestas.
type BatchResponse struct {
	ID              string          `json:"id"`
	ProductName     string          `json:"product_name"`
	CompanyID       string          `json:"company_id"`
	CompanyName     string          `json:"company_name,omitempty"`
	BatchCode       string          `json:"batch_code"`
	ManufactureDate string          `json:"manufacture_date"`
	ExpiryDate      string          `json:"expiry_date"`
	HSNCode         string          `json:"hsn_code"`
	MRP             decimal.Decimal `json:"mrp"`
	DiscountPct     decimal.Decimal `json:"discount_pct"`
	UnitRate        decimal.Decimal `json:"unit_rate"`
	InitialUnits    int             `json:"initial_units"`
	UnitsRemaining  int             `json:"units_remaining"`
	TaxableAmount   decimal.Decimal `json:"taxable_amount"`
	IGST            decimal.Decimal `json:"igst"`
	CGST            decimal.Decimal `json:"cgst"`
	SGST            decimal.Decimal `json:"sgst"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	AmountInWords   string          `json:"amount_in_words"`
	ArchivedAt      *time.Time      `json:"archived_at,omitempty"`
}

// AllocationRequest body de POST /api/stock/allocate y POST /api/bill/items.
type AllocationRequest struct {
	ProductName string `json:"product_name" validate:"required"`
	CompanyID   string `json:"company_id" validate:"required,uuid"`
	Quantity    int    `json:"quantity"`
}

// AllocationEntryResponse unidades tomadas de un lote.
type AllocationEntryResponse struct {
	BatchID   string          `json:"batch_id"`
	BatchCode string          `json:"batch_code"`
	Units     int             `json:"units"`
	UnitRate  decimal.Decimal `json:"unit_rate"`
}

// AllocationResponse plan de asignación (no modifica stock).
type AllocationResponse struct {
	ProductName string                    `json:"product_name"`
	CompanyID   string                    `json:"company_id"`
	Requested   int                       `json:"requested"`
	Entries     []AllocationEntryResponse `json:"entries"`
}

// ImportRowResult resultado de una fila importada.
type ImportRowResult struct {
	Line      int    `json:"line"`
	BatchCode string `json:"batch_code,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ImportResponse resumen de una importación de planilla.
type ImportResponse struct {
	Imported int               `json:"imported"`
	Failed   int               `json:"failed"`
	Rows     []ImportRowResult `json:"rows"`
}

// BatchHistoryResponse registro de lote vaciado.
type BatchHistoryResponse struct {
	BatchID         string    `json:"batch_id"`
	ProductName     string    `json:"product_name"`
	BatchCode       string    `json:"batch_code"`
	CompanyName     string    `json:"company_name"`
	InitialUnits    int       `json:"initial_units"`
	ManufactureDate string    `json:"manufacture_date"`
	ExpiryDate      string    `json:"expiry_date"`
	EmptiedDate     time.Time `json:"emptied_date"`
}
