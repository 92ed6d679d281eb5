package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch es un lote recibido de un producto de una empresa, con su propio vencimiento,
// costo y unidades restantes.
//
// Invariantes: UnitsRemaining >= 0; BatchCode es único y empieza con el prefijo
// registrado para ProductName. Un lote con UnitsRemaining == 0 queda archivado
// (ArchivedAt != nil) y deja de participar en asignaciones, pero su fila se conserva
// para que el código siga reservado.
type Batch struct {
	ID              string
	ProductName     string
	CompanyID       string
	ManufactureDate time.Time
	ExpiryDate      time.Time
	BatchCode       string
	MRP             decimal.Decimal
	DiscountPct     decimal.Decimal
	HSNCode         string
	InitialUnits    int
	UnitsRemaining  int
	UnitRate        decimal.Decimal // MRP menos descuento
	TaxableAmount   decimal.Decimal
	IGST            decimal.Decimal
	CGST            decimal.Decimal
	SGST            decimal.Decimal
	TotalAmount     decimal.Decimal
	AmountInWords   string
	ArchivedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Available indica si el lote puede participar en una asignación.
func (b *Batch) Available() bool {
	return b.UnitsRemaining > 0 && b.ArchivedAt == nil
}

// BatchWithCompany lote con el nombre de su empresa (listados y exportación).
type BatchWithCompany struct {
	Batch
	CompanyName    string
	CompanyAddress string
	CompanyGST     string
}
