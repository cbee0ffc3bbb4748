// Package pricing computes line-item subtotals and document totals with
// currency semantics: two decimal places, half-up rounding.
package pricing

import "github.com/shopspring/decimal"

// LineInput is one (quantity, unit price) pair of an order or invoice
type LineInput struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns quantity x unit price rounded to two decimal places
func Subtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// Total returns the per-line subtotals and their sum
func Total(lines []LineInput) ([]decimal.Decimal, decimal.Decimal) {
	subtotals := make([]decimal.Decimal, len(lines))
	total := decimal.Zero
	for i, line := range lines {
		subtotals[i] = Subtotal(line.Quantity, line.UnitPrice)
		total = total.Add(subtotals[i])
	}
	return subtotals, total.Round(2)
}
