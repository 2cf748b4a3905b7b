package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	stockdomain "github.com/ghuser/gildedstock/services/stock/domain"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestNewItem(t *testing.T) {
	id := uuid.New()

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewItem(id, "   ", datePtr(2023, time.October, 28), 10)
		if !errors.Is(err, stockdomain.ErrBlankName) {
			t.Fatalf("expected ErrBlankName, got %v", err)
		}
	})

	t.Run("rejects negative quality", func(t *testing.T) {
		_, err := NewItem(id, "banana", datePtr(2023, time.October, 28), -1)
		if !errors.Is(err, stockdomain.ErrNegativeQuality) {
			t.Fatalf("expected ErrNegativeQuality, got %v", err)
		}
		var nq stockdomain.NegativeQualityError
		if !errors.As(err, &nq) || nq.Actual != -1 {
			t.Fatalf("expected NegativeQualityError{-1}, got %v", err)
		}
	})

	t.Run("accepts quality above fifty", func(t *testing.T) {
		it, err := NewItem(id, "kumquat", nil, 101)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if it.Quality != 101 {
			t.Fatalf("quality = %d, want 101", it.Quality)
		}
	})

	t.Run("truncates sell-by to a calendar date", func(t *testing.T) {
		sellBy := time.Date(2023, time.October, 28, 17, 30, 12, 0, time.UTC)
		it, err := NewItem(id, "banana", &sellBy, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2023, time.October, 28, 0, 0, 0, 0, time.UTC)
		if !it.SellBy.Equal(want) {
			t.Fatalf("sell-by = %v, want %v", it.SellBy, want)
		}
	})

	t.Run("normalizes offset-zone sell-by to the same calendar day", func(t *testing.T) {
		london, err := time.LoadLocation("Europe/London")
		if err != nil {
			t.Fatal(err)
		}
		// Midnight London on a BST date is 23:00 UTC the day before; the
		// item must still carry June 15th.
		sellBy := time.Date(2026, time.June, 15, 0, 0, 0, 0, london)
		it, err := NewItem(id, "strawberries", &sellBy, 20)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
		if !it.SellBy.Equal(want) {
			t.Fatalf("sell-by = %v, want %v", it.SellBy, want)
		}

		utcTwin, err := NewItem(id, "strawberries", &want, 20)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !it.Equal(utcTwin) {
			t.Fatal("items built from the same calendar day must be equal")
		}
	})
}

func TestCategoryDerivation(t *testing.T) {
	dated := datePtr(2023, time.October, 28)

	tests := []struct {
		name   string
		sellBy *time.Time
		want   Category
	}{
		{"banana", dated, CategoryNormal},
		{"Aged Brie", dated, CategoryAged},
		{"Aged Brie", nil, CategoryAged},
		{"Backstage passes to a TAFKAL80ETC concert", dated, CategoryEventTicket},
		{"Conjured Mana Cake", dated, CategoryConjured},
		{"Sulfuras, Hand of Ragnaros", nil, CategoryLegendary},
		{"kumquat", nil, CategoryLegendary},
	}

	for _, tc := range tests {
		t.Run(tc.name+"/"+string(tc.want), func(t *testing.T) {
			it, err := NewItem(uuid.New(), tc.name, tc.sellBy, 10)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if it.Category != tc.want {
				t.Fatalf("category = %s, want %s", it.Category, tc.want)
			}
		})
	}
}

func TestWithQuality(t *testing.T) {
	t.Run("clamps override above fifty", func(t *testing.T) {
		it, _ := NewItem(uuid.New(), "banana", datePtr(2023, time.October, 28), 10)
		if got := it.WithQuality(80).Quality; got != 50 {
			t.Fatalf("quality = %d, want 50", got)
		}
	})

	t.Run("clamps override below zero", func(t *testing.T) {
		it, _ := NewItem(uuid.New(), "banana", datePtr(2023, time.October, 28), 10)
		if got := it.WithQuality(-5).Quality; got != 0 {
			t.Fatalf("quality = %d, want 0", got)
		}
	})

	t.Run("over-fifty item keeps its own ceiling", func(t *testing.T) {
		it, _ := NewItem(uuid.New(), "kumquat", nil, 101)
		if got := it.WithQuality(200).Quality; got != 101 {
			t.Fatalf("quality = %d, want 101", got)
		}
		if got := it.WithQuality(75).Quality; got != 75 {
			t.Fatalf("quality = %d, want 75", got)
		}
	})
}

func TestExpired(t *testing.T) {
	sellBy := datePtr(2023, time.October, 28)
	it, _ := NewItem(uuid.New(), "banana", sellBy, 10)

	t.Run("not expired on the sell-by day", func(t *testing.T) {
		if it.Expired(*sellBy) {
			t.Fatal("expected not expired")
		}
	})

	t.Run("expired the day after", func(t *testing.T) {
		if !it.Expired(sellBy.AddDate(0, 0, 1)) {
			t.Fatal("expected expired")
		}
	})

	t.Run("undated items never expire", func(t *testing.T) {
		undated, _ := NewItem(uuid.New(), "kumquat", nil, 10)
		if undated.Expired(sellBy.AddDate(0, 0, 1000)) {
			t.Fatal("expected not expired")
		}
	})

	t.Run("zone offset does not skew the comparison", func(t *testing.T) {
		london, err := time.LoadLocation("Europe/London")
		if err != nil {
			t.Fatal(err)
		}
		// Late evening in London on the sell-by day is still the sell-by day.
		evening := time.Date(2023, time.October, 28, 23, 30, 0, 0, london)
		if it.Expired(evening) {
			t.Fatal("expected not expired on sell-by evening")
		}
	})
}
