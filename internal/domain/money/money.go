package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Round2 rounds a monetary amount to 2 decimal places, half up.
// Every amount that reaches persistence or a document passes through here.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ApplyDiscount returns unitPrice * (1 - percent/100). Percent outside
// [0,100] is rejected, never clamped.
func ApplyDiscount(unitPrice decimal.Decimal, percent decimal.Decimal) (decimal.Decimal, error) {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, fmt.Errorf("discount percent must be between 0 and 100, got %s", percent)
	}
	factor := decimal.NewFromInt(1).Sub(percent.Div(decimal.NewFromInt(100)))
	return unitPrice.Mul(factor), nil
}
