package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/gildedstock/pkg/analytics"
	"github.com/ghuser/gildedstock/services/stock/domain/models"
)

// spyAnalytics records reported events; safe for concurrent Report calls.
type spyAnalytics struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (s *spyAnalytics) Report(_ context.Context, e analytics.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *spyAnalytics) all() []analytics.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]analytics.Event{}, s.events...)
}

func TestPricedLoaderLoad(t *testing.T) {
	stock := NewStock(time.UTC)
	lastModified := time.Date(2023, time.October, 27, 9, 0, 0, 0, time.UTC)
	now := lastModified.Add(time.Hour) // same day, updater writes nothing

	newList := func(t *testing.T, names ...string) models.StockList {
		items := make([]models.Item, len(names))
		for i, name := range names {
			items[i] = testItem(t, name, sellByOn(2023, time.October, 30), 20)
		}
		return models.StockList{LastModified: lastModified, Items: items}
	}

	t.Run("prices every item and preserves order", func(t *testing.T) {
		list := newList(t, "banana", "apple", "pear")
		tx := &fakeTx{list: list}
		sink := &spyAnalytics{}

		pricing := func(_ context.Context, item models.Item) (*models.Price, error) {
			p, err := models.NewPrice(100 + item.Quality)
			if err != nil {
				return nil, err
			}
			return &p, nil
		}

		got, err := NewPricedLoader(stock, pricing, sink).Load(context.Background(), tx, now)
		require.NoError(t, err)
		require.Len(t, got.Items, 3)

		for i, item := range list.Items {
			assert.Equal(t, item.ID, got.Items[i].ID, "order must match the stock list")
			require.NotNil(t, got.Items[i].Outcome)
			require.NotNil(t, got.Items[i].Outcome.Price)
			assert.Equal(t, 120, got.Items[i].Outcome.Price.Pence())
		}
		assert.Empty(t, sink.all())
	})

	t.Run("one failure does not poison the rest", func(t *testing.T) {
		list := newList(t, "banana", "cursed", "pear")
		tx := &fakeTx{list: list}
		sink := &spyAnalytics{}
		boom := errors.New("pricing blew up")

		pricing := func(_ context.Context, item models.Item) (*models.Price, error) {
			if item.Name.String() == "cursed" {
				return nil, boom
			}
			p, _ := models.NewPrice(609)
			return &p, nil
		}

		got, err := NewPricedLoader(stock, pricing, sink).Load(context.Background(), tx, now)
		require.NoError(t, err)

		require.NotNil(t, got.Items[0].Outcome.Price)
		assert.True(t, got.Items[1].Outcome.Failed())
		assert.ErrorIs(t, got.Items[1].Outcome.Err, boom)
		require.NotNil(t, got.Items[2].Outcome.Price)

		events := sink.all()
		require.Len(t, events, 1, "exactly one failure report")
		failed, ok := events[0].(PricingFailedEvent)
		require.True(t, ok)
		assert.Equal(t, list.Items[1].ID, failed.ItemID)
		assert.Equal(t, "cursed", failed.Name)
	})

	t.Run("a panicking collaborator only costs its own item", func(t *testing.T) {
		list := newList(t, "banana", "explosive")
		tx := &fakeTx{list: list}
		sink := &spyAnalytics{}

		pricing := func(_ context.Context, item models.Item) (*models.Price, error) {
			if item.Name.String() == "explosive" {
				panic("kaboom")
			}
			p, _ := models.NewPrice(609)
			return &p, nil
		}

		got, err := NewPricedLoader(stock, pricing, sink).Load(context.Background(), tx, now)
		require.NoError(t, err)

		require.NotNil(t, got.Items[0].Outcome.Price)
		assert.True(t, got.Items[1].Outcome.Failed())
		assert.Contains(t, got.Items[1].Outcome.Err.Error(), "kaboom")
		assert.Len(t, sink.all(), 1)
	})

	t.Run("absent price is not a failure", func(t *testing.T) {
		list := newList(t, "banana")
		tx := &fakeTx{list: list}
		sink := &spyAnalytics{}

		pricing := func(context.Context, models.Item) (*models.Price, error) {
			return nil, nil
		}

		got, err := NewPricedLoader(stock, pricing, sink).Load(context.Background(), tx, now)
		require.NoError(t, err)

		require.NotNil(t, got.Items[0].Outcome)
		assert.Nil(t, got.Items[0].Outcome.Price)
		assert.False(t, got.Items[0].Outcome.Failed())
		assert.Empty(t, sink.all())
	})

	t.Run("stock list load failure aborts the whole operation", func(t *testing.T) {
		boom := errors.New("connection reset")
		tx := &fakeTx{loadErr: boom}
		sink := &spyAnalytics{}
		pricing := func(context.Context, models.Item) (*models.Price, error) {
			t.Error("pricing must not run when the load fails")
			return nil, nil
		}

		_, err := NewPricedLoader(stock, pricing, sink).Load(context.Background(), tx, now)
		require.ErrorIs(t, err, boom)
		assert.Empty(t, sink.all())
	})

	t.Run("fan-out stays within the concurrency bound", func(t *testing.T) {
		names := make([]string, 64)
		for i := range names {
			names[i] = "bulk item"
		}
		list := newList(t, names...)
		tx := &fakeTx{list: list}

		var mu sync.Mutex
		inFlight, peak := 0, 0
		pricing := func(context.Context, models.Item) (*models.Price, error) {
			mu.Lock()
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inFlight--
			mu.Unlock()
			p, _ := models.NewPrice(1)
			return &p, nil
		}

		_, err := NewPricedLoader(stock, pricing, &spyAnalytics{}).Load(context.Background(), tx, now)
		require.NoError(t, err)
		assert.LessOrEqual(t, peak, defaultMaxConcurrentPricing)
	})
}
