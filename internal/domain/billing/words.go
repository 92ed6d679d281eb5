package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ones  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// AmountInWords monto en letras con el sistema indio (Lakh, Crore).
// Ej: 1234.56 -> "One Thousand Two Hundred and Thirty Four Rupees and Fifty Six Paise".
func AmountInWords(amount decimal.Decimal) string {
	amount = amount.Abs().Round(2)
	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()

	var b strings.Builder
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(numberToWords(rupees))
	}
	b.WriteString(" Rupees")
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(numberToWords(paise))
		b.WriteString(" Paise")
	}
	return b.String()
}

func numberToWords(n int64) string {
	switch {
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		return join(tens[n/10], ones[n%10], " ")
	case n < 1000:
		return join(ones[n/100]+" Hundred", numberToWords(n%100), " and ")
	case n < 100000:
		return join(numberToWords(n/1000)+" Thousand", numberToWords(n%1000), " ")
	case n < 10000000:
		return join(numberToWords(n/100000)+" Lakh", numberToWords(n%100000), " ")
	}
	return join(numberToWords(n/10000000)+" Crore", numberToWords(n%10000000), " ")
}

func join(head, tail, sep string) string {
	if tail == "" {
		return head
	}
	return head + sep + tail
}
