package models

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	t.Run("counts whole calendar days", func(t *testing.T) {
		from := time.Date(2023, time.October, 28, 23, 59, 0, 0, time.UTC)
		to := time.Date(2023, time.October, 29, 0, 1, 0, 0, time.UTC)
		if got := DaysBetween(from, to); got != 1 {
			t.Fatalf("got %d, want 1", got)
		}
	})

	t.Run("negative when to precedes from", func(t *testing.T) {
		from := time.Date(2023, time.October, 28, 0, 0, 0, 0, time.UTC)
		to := time.Date(2023, time.October, 25, 0, 0, 0, 0, time.UTC)
		if got := DaysBetween(from, to); got != -3 {
			t.Fatalf("got %d, want -3", got)
		}
	})

	t.Run("zero within the same day", func(t *testing.T) {
		from := time.Date(2023, time.October, 28, 0, 0, 0, 0, time.UTC)
		to := time.Date(2023, time.October, 28, 23, 59, 59, 0, time.UTC)
		if got := DaysBetween(from, to); got != 0 {
			t.Fatalf("got %d, want 0", got)
		}
	})

	t.Run("counts across a DST transition", func(t *testing.T) {
		london, err := time.LoadLocation("Europe/London")
		if err != nil {
			t.Fatal(err)
		}
		// Clocks go back in London on 2023-10-29: that Saturday-to-Monday
		// span is 49 wall hours but still exactly two calendar days.
		from := time.Date(2023, time.October, 28, 12, 0, 0, 0, london)
		to := time.Date(2023, time.October, 30, 12, 0, 0, 0, london)
		if got := DaysBetween(from, to); got != 2 {
			t.Fatalf("got %d, want 2", got)
		}
	})
}
