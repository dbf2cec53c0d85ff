package quote

import (
	"github.com/shopspring/decimal"

	"obramat/go_backend/internal/domain/money"
)

// LaborEstimate is the alternate quote shape, priced by surface area times a
// unit rate. Advance and balance percentages are independent fields; they are
// not required to sum to 100.
type LaborEstimate struct {
	Description    string
	System         string
	Finish         string
	Surface        decimal.Decimal
	UnitPrice      decimal.Decimal
	AdvancePercent decimal.Decimal
	BalancePercent decimal.Decimal
	WarrantyYears  int
}

func (l *LaborEstimate) SetSurface(v decimal.Decimal) error {
	if v.IsNegative() {
		return validationf("surface cannot be negative, got %s", v)
	}
	l.Surface = v
	return nil
}

func (l *LaborEstimate) SetUnitPrice(v decimal.Decimal) error {
	if v.IsNegative() {
		return validationf("unit price cannot be negative, got %s", v)
	}
	l.UnitPrice = v
	return nil
}

func (l *LaborEstimate) SetAdvancePercent(v decimal.Decimal) error {
	if v.IsNegative() {
		return validationf("advance percent cannot be negative, got %s", v)
	}
	l.AdvancePercent = v
	return nil
}

func (l *LaborEstimate) SetBalancePercent(v decimal.Decimal) error {
	if v.IsNegative() {
		return validationf("balance percent cannot be negative, got %s", v)
	}
	l.BalancePercent = v
	return nil
}

// Estimation is surface * unitPrice, recomputed on read so it can never go
// stale after a field edit.
func (l *LaborEstimate) Estimation() decimal.Decimal {
	return money.Round2(l.Surface.Mul(l.UnitPrice))
}
