package models

import "time"

// NeverSaved is the sentinel LastModified of a stock list that has not yet
// been persisted. A store with no saved snapshot loads as an empty stock
// list carrying this timestamp, never as a nil value.
var NeverSaved = time.Unix(0, 0).UTC()

// StockList is an immutable snapshot of the merchant's inventory: the
// instant it was last modified plus an ordered sequence of items. Updates
// produce new values; no component mutates a snapshot in place.
type StockList struct {
	LastModified time.Time
	Items        []Item
}

// EmptyStockList returns the snapshot a store yields before any save.
func EmptyStockList() StockList {
	return StockList{LastModified: NeverSaved, Items: []Item{}}
}

// Equal compares two stock lists structurally: same last-modified instant
// and the same items in the same order.
func (s StockList) Equal(other StockList) bool {
	if !s.LastModified.Equal(other.LastModified) {
		return false
	}
	return ItemsEqual(s.Items, other.Items)
}

// ItemsEqual compares two item sequences by value, order-sensitive.
func ItemsEqual(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
