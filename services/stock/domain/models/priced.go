package models

import "time"

// PriceOutcome is the result of one pricing call for one item:
//   - a price (Price non-nil, Err nil),
//   - an intentional absence (both nil) — the pricing collaborator knows
//     the item but has no price for it,
//   - a failure (Err non-nil).
type PriceOutcome struct {
	Price *Price
	Err   error
}

// Failed reports whether pricing this item failed.
func (o PriceOutcome) Failed() bool {
	return o.Err != nil
}

// PricedItem is an Item enriched with its price outcome. A nil Outcome
// means pricing was not requested (e.g. pricing disabled), which is
// distinct from an absent price.
type PricedItem struct {
	Item
	Outcome *PriceOutcome
}

// PricedStockList is a StockList where every item carries a price outcome.
// It is a read-only enrichment layer and is never persisted.
type PricedStockList struct {
	LastModified time.Time
	Items        []PricedItem
}
