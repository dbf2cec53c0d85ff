package quote

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the mutable materials line-item collection for one editing session.
// All mutations are synchronous UI events; the cart is owned by a single
// session and is not safe for concurrent use.
type Cart struct {
	items []LineItem
}

func NewCart() *Cart { return &Cart{} }

// AddItem appends a line for the product with discount 0, or, when a line
// with the same product already exists, merges by summing quantities.
func (c *Cart) AddItem(p ProductSnapshot, quantity int) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, validationf("quantity must be at least 1, got %d", quantity)
	}
	if p.Price.IsNegative() {
		return LineItem{}, validationf("unit price cannot be negative, got %s", p.Price)
	}
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity += quantity
			return c.items[i], nil
		}
	}
	li := LineItem{
		ID:              uuid.NewString(),
		ProductID:       p.ID,
		ProductName:     p.Name,
		UnitPrice:       p.Price,
		Quantity:        quantity,
		DiscountPercent: decimal.Zero,
		ProductType:     p.Type,
		Color:           p.Color,
		Unit:            p.Unit,
	}
	c.items = append(c.items, li)
	return li, nil
}

func (c *Cart) RemoveItem(lineID string) {
	for i := range c.items {
		if c.items[i].ID == lineID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity updates a line's quantity. A quantity of zero or less removes
// the line; items are never stored at quantity zero.
func (c *Cart) SetQuantity(lineID string, quantity int) error {
	if quantity <= 0 {
		c.RemoveItem(lineID)
		return nil
	}
	li, err := c.find(lineID)
	if err != nil {
		return err
	}
	li.Quantity = quantity
	return nil
}

func (c *Cart) SetUnitPrice(lineID string, price decimal.Decimal) error {
	if price.IsNegative() {
		return validationf("unit price cannot be negative, got %s", price)
	}
	li, err := c.find(lineID)
	if err != nil {
		return err
	}
	li.UnitPrice = price
	return nil
}

// SetDiscount sets a single line's discount percent. Only that line's derived
// amounts change; other lines are untouched.
func (c *Cart) SetDiscount(lineID string, percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return validationf("discount percent must be between 0 and 100, got %s", percent)
	}
	li, err := c.find(lineID)
	if err != nil {
		return err
	}
	li.DiscountPercent = percent
	return nil
}

func (c *Cart) Len() int { return len(c.items) }

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Totals recomputes live totals over the discounted lines.
func (c *Cart) Totals(taxPercent decimal.Decimal) (Totals, error) {
	lines := make([]TotalLine, 0, len(c.items))
	for _, li := range c.items {
		p, err := li.DiscountedUnitPrice()
		if err != nil {
			return Totals{}, err
		}
		lines = append(lines, TotalLine{Quantity: li.Quantity, UnitPrice: p})
	}
	return CalculateTotals(lines, taxPercent), nil
}

func (c *Cart) find(lineID string) (*LineItem, error) {
	for i := range c.items {
		if c.items[i].ID == lineID {
			return &c.items[i], nil
		}
	}
	return nil, validationf("line %s not found", lineID)
}
