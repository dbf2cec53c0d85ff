package stock

import (
	"errors"
	"fmt"
)

type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// Movement is a single stock adjustment against one product.
type Movement struct {
	ProductID int64
	Direction Direction
	Quantity  int
}

// Apply returns the stock level after the movement. Quantities of zero or
// less are rejected, and an outgoing movement can never take stock below
// zero.
func Apply(current int, m Movement) (int, error) {
	if m.Quantity <= 0 {
		return 0, fmt.Errorf("quantity must be positive, got %d", m.Quantity)
	}
	switch m.Direction {
	case In:
		return current + m.Quantity, nil
	case Out:
		if m.Quantity > current {
			return 0, fmt.Errorf("%w: have %d, requested %d", ErrInsufficientStock, current, m.Quantity)
		}
		return current - m.Quantity, nil
	}
	return 0, fmt.Errorf("unknown direction %q", m.Direction)
}
