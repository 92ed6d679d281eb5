package inventory

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// AmountsInput datos de entrada de un lote para calcular sus montos.
type AmountsInput struct {
	MRP         decimal.Decimal
	DiscountPct decimal.Decimal
	Units       int
	IGSTPct     decimal.Decimal
	CGSTPct     decimal.Decimal
	SGSTPct     decimal.Decimal
}

// Amounts montos derivados de un lote, redondeados a 2 decimales.
type Amounts struct {
	UnitRate      decimal.Decimal
	TaxableAmount decimal.Decimal
	IGST          decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	TotalAmount   decimal.Decimal
}

// ComputeBatchAmounts implementa el cálculo de montos del lote (servicio de dominio).
//
//	Rate    = MRP * (1 - Descuento/100)
//	Taxable = Rate * Unidades
//	Impuesto = Taxable * Pct/100 (IGST, CGST, SGST)
//	Total   = Taxable + IGST + CGST + SGST
func ComputeBatchAmounts(in AmountsInput) Amounts {
	rate := in.MRP.Mul(decimal.NewFromInt(1).Sub(in.DiscountPct.Div(hundred))).Round(2)
	taxable := rate.Mul(decimal.NewFromInt(int64(in.Units))).Round(2)
	igst := percentOf(taxable, in.IGSTPct)
	cgst := percentOf(taxable, in.CGSTPct)
	sgst := percentOf(taxable, in.SGSTPct)
	return Amounts{
		UnitRate:      rate,
		TaxableAmount: taxable,
		IGST:          igst,
		CGST:          cgst,
		SGST:          sgst,
		TotalAmount:   taxable.Add(igst).Add(cgst).Add(sgst),
	}
}

func percentOf(base, pct decimal.Decimal) decimal.Decimal {
	if pct.IsZero() {
		return decimal.Zero
	}
	return base.Mul(pct).Div(hundred).Round(2)
}
