package models

import (
	"fmt"
)

// Price is a value object holding a price in minor currency units (pence).
type Price int

// NewPrice constructs a valid Price or returns an error for negative values.
func NewPrice(pence int) (Price, error) {
	if pence < 0 {
		return 0, fmt.Errorf("price must not be negative, got %d", pence)
	}
	return Price(pence), nil
}

// Pence returns the raw minor-unit value.
func (p Price) Pence() int {
	return int(p)
}

// String renders the price as pounds and pence, e.g. "£6.09".
func (p Price) String() string {
	return fmt.Sprintf("£%d.%02d", int(p)/100, int(p)%100)
}
