package quote

import (
	"github.com/shopspring/decimal"

	"obramat/go_backend/internal/domain/money"
)

// TotalLine is one already-discounted line for the totals reduction.
type TotalLine struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Totals are always derived, never stored independently. Recomputing from the
// same lines and tax rate yields the same result.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// CalculateTotals reduces lines to subtotal/tax/total:
//
//	subtotal = round2(Σ qty*price)
//	tax      = round2(subtotal * taxPercent/100)
//	total    = round2(subtotal + tax)
//
// Pure function; safe to call on every mutation for live totals.
func CalculateTotals(lines []TotalLine, taxPercent decimal.Decimal) Totals {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	subtotal := money.Round2(sum)
	tax := money.Round2(subtotal.Mul(taxPercent).Div(decimal.NewFromInt(100)))
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    money.Round2(subtotal.Add(tax)),
	}
}
