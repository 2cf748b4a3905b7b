package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the stock domain. Use errors.Is() to check these.
var (
	// ErrBlankName indicates an item was constructed with a blank name.
	ErrBlankName = errors.New("item name must not be blank")

	// ErrNegativeQuality indicates an item was constructed with quality < 0.
	// The concrete error is a NegativeQualityError carrying the actual value.
	ErrNegativeQuality = errors.New("item quality must not be negative")

	// ErrStockListLoad indicates persisted stock data could not be
	// reconstructed into a valid StockList. The whole load fails; no
	// partial stock list is ever returned.
	ErrStockListLoad = errors.New("stock list could not be loaded")
)

// NegativeQualityError reports the rejected quality value.
// Matches ErrNegativeQuality via errors.Is().
type NegativeQualityError struct {
	Actual int
}

func (e NegativeQualityError) Error() string {
	return fmt.Sprintf("item quality must not be negative, got %d", e.Actual)
}

func (e NegativeQualityError) Unwrap() error {
	return ErrNegativeQuality
}
