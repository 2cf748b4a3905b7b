package models

import "time"

// DateOf truncates an instant to its calendar date, keeping the location.
// All sell-by comparisons and elapsed-day arithmetic operate on dates
// produced by this function.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole calendar days from one date to
// another, negative when `to` falls before `from`. Both arguments are
// truncated to dates first, so times of day are irrelevant.
func DaysBetween(from, to time.Time) int {
	f := DateOf(from)
	t := DateOf(to)
	// Compare in UTC so a DST transition between the two dates cannot
	// shift the count by a fractional day.
	fu := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	tu := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(tu.Sub(fu).Hours() / 24)
}
