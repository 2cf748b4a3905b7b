package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/gildedstock/services/stock/domain/aging"
	"github.com/ghuser/gildedstock/services/stock/domain/models"
	"github.com/ghuser/gildedstock/services/stock/domain/repositories"
)

// Stock catches a persisted stock list up with the calendar: it ages every
// item across the days elapsed since the snapshot was last modified.
// Elapsed days are whole calendar days in the store's fixed zone — one
// deterministic zone for the whole store, never the caller's local zone.
type Stock struct {
	zone *time.Location
}

// NewStock returns a Stock updater bound to the store's calendar zone.
func NewStock(zone *time.Location) *Stock {
	return &Stock{zone: zone}
}

// LoadAndUpdate loads the current snapshot inside the given transaction,
// ages every item across the elapsed days, and persists the result when
// anything changed (or any days elapsed, so LastModified advances).
// A load failure propagates without writing. A clock that moved backwards
// ages nothing.
//
// The operation is idempotent within a calendar day: a second call with a
// same-day `now` resolves to zero elapsed days and leaves quality alone.
func (s *Stock) LoadAndUpdate(ctx context.Context, tx repositories.Tx, now time.Time) (models.StockList, error) {
	loaded, err := tx.Load(ctx)
	if err != nil {
		return models.StockList{}, fmt.Errorf("load stock list: %w", err)
	}

	elapsedDays := models.DaysBetween(loaded.LastModified.In(s.zone), now.In(s.zone))
	if elapsedDays < 0 {
		elapsedDays = 0
	}

	today := now.In(s.zone)
	aged := make([]models.Item, len(loaded.Items))
	for i, item := range loaded.Items {
		aged[i] = aging.Age(item, elapsedDays, today)
	}

	if elapsedDays == 0 && models.ItemsEqual(aged, loaded.Items) {
		return loaded, nil
	}

	updated := models.StockList{LastModified: now, Items: aged}
	if err := tx.Save(ctx, updated); err != nil {
		return models.StockList{}, fmt.Errorf("save stock list: %w", err)
	}
	return updated, nil
}
