package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	stockdomain "github.com/ghuser/gildedstock/services/stock/domain"
)

// Category is the closed classification that drives an item's aging
// behaviour. It is derived once at construction time from the item's name
// and the presence of a sell-by date, and never changes afterwards.
type Category string

const (
	CategoryNormal      Category = "normal"
	CategoryAged        Category = "aged"
	CategoryLegendary   Category = "legendary"
	CategoryEventTicket Category = "event-ticket"
	CategoryConjured    Category = "conjured"
)

// Item is the core aggregate for the stock bounded context.
//
// Items are immutable: aging and quality overrides return new copies, never
// mutate in place. Quality is always >= 0 but may exceed 50 for legacy stock
// created before the cap was introduced; aging never pushes an item above
// max(current, 50).
type Item struct {
	ID       uuid.UUID
	Name     Name
	SellBy   *time.Time // calendar date; nil means the item never expires
	Quality  int
	Category Category
}

// NewItem constructs a valid Item or returns a creation error
// (ErrBlankName, NegativeQualityError). The category is derived from the
// name and sell-by presence; callers never supply it.
func NewItem(id uuid.UUID, name string, sellBy *time.Time, quality int) (Item, error) {
	n, err := NewName(name)
	if err != nil {
		return Item{}, err
	}
	if quality < 0 {
		return Item{}, stockdomain.NegativeQualityError{Actual: quality}
	}
	return Item{
		ID:       id,
		Name:     n,
		SellBy:   normalizeSellBy(sellBy),
		Quality:  quality,
		Category: categoryFor(n, sellBy),
	}, nil
}

// WithQuality returns a copy of the item with quality clamped to
// [0, max(current, 50)]. An item already above 50 is never silently
// reduced below its existing value by an override.
func (it Item) WithQuality(quality int) Item {
	qualityCap := it.Quality
	if qualityCap < 50 {
		qualityCap = 50
	}
	if quality > qualityCap {
		quality = qualityCap
	}
	if quality < 0 {
		quality = 0
	}
	it.Quality = quality
	return it
}

// Expired reports whether the item's sell-by date has passed on the given
// day. Items without a sell-by date never expire.
func (it Item) Expired(on time.Time) bool {
	if it.SellBy == nil {
		return false
	}
	// Compare by calendar components so the sell-by date's location does
	// not skew the comparison against a store-zone instant.
	return DaysBetween(*it.SellBy, on) > 0
}

// DaysUntilSellBy returns the whole days between the given day and the
// item's sell-by date (negative once passed), or 0 for undated items.
func (it Item) DaysUntilSellBy(on time.Time) int {
	if it.SellBy == nil {
		return 0
	}
	return DaysBetween(on, *it.SellBy)
}

// Equal compares two items by value.
func (it Item) Equal(other Item) bool {
	if it.ID != other.ID || it.Name != other.Name ||
		it.Quality != other.Quality || it.Category != other.Category {
		return false
	}
	switch {
	case it.SellBy == nil && other.SellBy == nil:
		return true
	case it.SellBy == nil || other.SellBy == nil:
		return false
	default:
		return it.SellBy.Equal(*other.SellBy)
	}
}

// categoryFor derives the closed category from name and sell-by presence.
// Undated items that match no named category are legendary: they have no
// sell-by semantics and their quality is frozen.
func categoryFor(name Name, sellBy *time.Time) Category {
	switch {
	case name.String() == "Aged Brie":
		return CategoryAged
	case strings.HasPrefix(name.String(), "Backstage passes"):
		return CategoryEventTicket
	case strings.HasPrefix(name.String(), "Conjured"):
		return CategoryConjured
	case sellBy == nil:
		return CategoryLegendary
	default:
		return CategoryNormal
	}
}

// normalizeSellBy canonicalizes a sell-by instant to midnight UTC of its
// own calendar day. A sell-by is a date, not an instant: an item created
// from a London-midnight time must compare equal to, and round-trip through
// storage as, the same calendar day.
func normalizeSellBy(sellBy *time.Time) *time.Time {
	if sellBy == nil {
		return nil
	}
	y, m, d := sellBy.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}
