package billing

import (
	"github.com/jhoicas/facturacion-lotes/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Totals subtotal, impuesto y total de una factura.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal unidades * tarifa, a 2 decimales.
func LineTotal(quantity int, rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// ComputeTotals subtotal = suma de line_total; impuesto = subtotal * taxRate; total = subtotal + impuesto.
func ComputeTotals(items []entity.LineItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.LineTotal)
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}
