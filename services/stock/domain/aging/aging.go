// Package aging implements the per-category quality transition rules for
// stock items. It is pure: no I/O, no clock, no concurrency. Sell-by dates
// are never changed by aging — only quality moves, and "expired" is always
// computed against the day being simulated.
package aging

import (
	"time"

	"github.com/ghuser/gildedstock/services/stock/domain/models"
)

// Age advances an item across elapsedDays whole days ending on the given
// reference date. The result is identical to applying ApplyOneDay once for
// each of the elapsedDays days leading up to `on`, so catching up N missed
// days equals N sequential single-day updates. elapsedDays <= 0 returns the
// item unchanged.
func Age(it models.Item, elapsedDays int, on time.Time) models.Item {
	for i := 1 - elapsedDays; i <= 0; i++ {
		it = ApplyOneDay(it, on.AddDate(0, 0, i))
	}
	return it
}

// ApplyOneDay applies a single day's transition for the item's category.
// It is a total dispatch over the closed category set.
func ApplyOneDay(it models.Item, day time.Time) models.Item {
	switch it.Category {
	case models.CategoryLegendary:
		return it
	case models.CategoryAged:
		return appreciate(it, day, 1)
	case models.CategoryEventTicket:
		return ticketDay(it, day)
	case models.CategoryConjured:
		return depreciate(it, day, 2)
	default:
		return depreciate(it, day, 1)
	}
}

// depreciate lowers quality by rate, doubled once the item has expired,
// never below zero.
func depreciate(it models.Item, day time.Time, rate int) models.Item {
	if it.Expired(day) {
		rate *= 2
	}
	return withAgedQuality(it, it.Quality-rate)
}

// appreciate raises quality by rate, doubled once the item has expired.
func appreciate(it models.Item, day time.Time, rate int) models.Item {
	if it.Expired(day) {
		rate *= 2
	}
	return withAgedQuality(it, it.Quality+rate)
}

// ticketDay applies the event-ticket curve: +1 with more than 10 days to
// go, +2 within 10, +3 within 5, worthless the day after the event.
func ticketDay(it models.Item, day time.Time) models.Item {
	if it.Expired(day) {
		return withAgedQuality(it, 0)
	}
	switch left := it.DaysUntilSellBy(day); {
	case left > 10:
		return withAgedQuality(it, it.Quality+1)
	case left > 5:
		return withAgedQuality(it, it.Quality+2)
	default:
		return withAgedQuality(it, it.Quality+3)
	}
}

// withAgedQuality clamps to [0, max(current, 50)]: aging never lifts an
// item above 50, and never drags an already-over-50 item down to the cap.
func withAgedQuality(it models.Item, quality int) models.Item {
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
