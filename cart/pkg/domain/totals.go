package domain

import (
	"github.com/shopspring/decimal"
)

var DefaultTaxRate = decimal.RequireFromString("0.12")

type Totals struct {
	Subtotal   decimal.Decimal `json:"subTotal"`
	Tax        decimal.Decimal `json:"impuesto"`
	GrandTotal decimal.Decimal `json:"total"`
}

// ComputeTotals sums the lines exactly. It does not modify lines.
func ComputeTotals(lines []Line, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Amount())
	}
	tax := subtotal.Mul(taxRate)
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax),
	}
}

// Rounded rounds each figure to cents, half away from zero.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:   t.Subtotal.Round(2),
		Tax:        t.Tax.Round(2),
		GrandTotal: t.GrandTotal.Round(2),
	}
}
