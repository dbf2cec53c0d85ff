package stock

import (
	"errors"
	"testing"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		direction Direction
		qty       int
		expect    int
		wantErr   bool
		wantShort bool
	}{
		{"increase", 10, In, 5, 15, false, false},
		{"decrease", 10, Out, 4, 6, false, false},
		{"decrease to zero", 10, Out, 10, 0, false, false},
		{"decrease beyond stock", 3, Out, 4, 0, true, true},
		{"zero quantity rejected", 10, In, 0, 0, true, false},
		{"negative quantity rejected", 10, Out, -2, 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.current, Movement{ProductID: 1, Direction: tt.direction, Quantity: tt.qty})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Apply(%d, %s, %d) expected error", tt.current, tt.direction, tt.qty)
				}
				if tt.wantShort && !errors.Is(err, ErrInsufficientStock) {
					t.Errorf("expected ErrInsufficientStock, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply(%d, %s, %d): %v", tt.current, tt.direction, tt.qty, err)
			}
			if got != tt.expect {
				t.Errorf("Apply(%d, %s, %d) = %d, want %d", tt.current, tt.direction, tt.qty, got, tt.expect)
			}
		})
	}
}
