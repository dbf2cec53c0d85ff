package quote

import (
	"time"

	"github.com/shopspring/decimal"

	"obramat/go_backend/internal/domain/money"
)

// Kind tags the two mutually exclusive quote shapes.
type Kind string

const (
	KindMaterials Kind = "materials"
	KindLabor     Kind = "labor"
)

const (
	StatusPending = "pendiente"
	StatusIssued  = "emitida"
)

// ProductSnapshot is what the cart copies from the catalog when a line is
// added. Name and price are frozen at add-time.
type ProductSnapshot struct {
	ID    int64
	Name  string
	Price decimal.Decimal
	Type  string
	Color string
	Unit  string
}

// LineItem is one product entry in a materials cart. Derived amounts are
// recomputed on read, never cached.
type LineItem struct {
	ID              string
	ProductID       int64
	ProductName     string
	UnitPrice       decimal.Decimal
	Quantity        int
	DiscountPercent decimal.Decimal

	ProductType string
	Color       string
	Unit        string
}

// DiscountedUnitPrice returns the unit price after the line discount, rounded
// to cents. This is the price that gets persisted and billed; rounding here
// keeps cart totals, stored detail rows and document lines on the same value.
func (li LineItem) DiscountedUnitPrice() (decimal.Decimal, error) {
	p, err := money.ApplyDiscount(li.UnitPrice, li.DiscountPercent)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Round2(p), nil
}

// Subtotal returns round2(discountedUnitPrice * quantity).
func (li LineItem) Subtotal() (decimal.Decimal, error) {
	p, err := li.DiscountedUnitPrice()
	if err != nil {
		return decimal.Zero, err
	}
	return money.Round2(p.Mul(decimal.NewFromInt(int64(li.Quantity)))), nil
}

// Aggregate is a quote being edited in a session. Exactly one of Cart or
// Labor is populated, selected by Kind. The Builder freezes it into gateway
// params on submission; nothing flows back into it afterwards.
type Aggregate struct {
	ClientID   int64
	UserID     int64
	Kind       Kind
	Cart       *Cart
	Labor      *LaborEstimate
	TaxPercent decimal.Decimal
	Note       string
}

func NewMaterialsQuote(clientID, userID int64, taxPercent decimal.Decimal) *Aggregate {
	return &Aggregate{
		ClientID:   clientID,
		UserID:     userID,
		Kind:       KindMaterials,
		Cart:       NewCart(),
		TaxPercent: taxPercent,
	}
}

func NewLaborQuote(clientID, userID int64, taxPercent decimal.Decimal) *Aggregate {
	return &Aggregate{
		ClientID:   clientID,
		UserID:     userID,
		Kind:       KindLabor,
		Labor:      &LaborEstimate{},
		TaxPercent: taxPercent,
	}
}

// Record is a persisted quote header.
type Record struct {
	ID         int64
	ClientID   int64
	UserID     int64
	Kind       Kind
	TaxPercent decimal.Decimal
	Note       string
	Total      decimal.Decimal
	Status     string
	CreatedAt  time.Time
}

// DetailRow is a persisted materials line as the gateway returns it. The
// stored LineSubtotal is carried for listing screens only; the assembler
// recomputes it from Quantity and UnitPrice.
type DetailRow struct {
	ProductID    int64
	ProductName  string
	Quantity     int
	UnitPrice    decimal.Decimal
	LineSubtotal decimal.Decimal
	ProductType  string
	Unit         string
}

// LaborRow is a persisted labor estimate as the gateway returns it.
type LaborRow struct {
	Description   string
	System        string
	Finish        string
	Surface       decimal.Decimal
	Price         decimal.Decimal
	Advance       decimal.Decimal
	Balance       decimal.Decimal
	WarrantyYears int
}

// ClientInfo is the client-identification block on a rendered document.
type ClientInfo struct {
	ID      int64
	Name    string
	Address string
	Phone   string
	Email   string
}
