package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/gildedstock/services/stock/domain/models"
	"github.com/ghuser/gildedstock/services/stock/domain/repositories"
)

// StockService exposes the stock use-cases. Every operation opens exactly
// one store transaction: load-priced, add, and delete all run the updater
// first so no caller ever works from a stale snapshot.
type StockService struct {
	items          repositories.Items
	stock          *Stock
	loader         *PricedLoader
	pricingEnabled bool
	clock          func() time.Time
}

// NewStockService wires the use-cases. loader may be nil only when
// pricingEnabled is false.
func NewStockService(
	items repositories.Items,
	stock *Stock,
	loader *PricedLoader,
	pricingEnabled bool,
	clock func() time.Time,
) *StockService {
	if clock == nil {
		clock = time.Now
	}
	return &StockService{
		items:          items,
		stock:          stock,
		loader:         loader,
		pricingEnabled: pricingEnabled,
		clock:          clock,
	}
}

// LoadPricedStockList updates the stock list and enriches it with prices.
// With pricing disabled, items come back with no outcome at all —
// distinct from an absent price.
func (s *StockService) LoadPricedStockList(ctx context.Context) (models.PricedStockList, error) {
	now := s.clock()
	var out models.PricedStockList
	err := s.items.InTransaction(ctx, func(tx repositories.Tx) error {
		if !s.pricingEnabled {
			list, err := s.stock.LoadAndUpdate(ctx, tx, now)
			if err != nil {
				return err
			}
			out = unpriced(list)
			return nil
		}
		priced, err := s.loader.Load(ctx, tx, now)
		if err != nil {
			return err
		}
		out = priced
		return nil
	})
	if err != nil {
		return models.PricedStockList{}, err
	}
	return out, nil
}

// UpdateStock runs the aging catch-up without pricing. The scheduled
// maintenance run uses this.
func (s *StockService) UpdateStock(ctx context.Context) (models.StockList, error) {
	now := s.clock()
	var out models.StockList
	err := s.items.InTransaction(ctx, func(tx repositories.Tx) error {
		list, err := s.stock.LoadAndUpdate(ctx, tx, now)
		if err != nil {
			return err
		}
		out = list
		return nil
	})
	if err != nil {
		return models.StockList{}, err
	}
	return out, nil
}

// AddItem brings the stock list up to date and appends the new item.
func (s *StockService) AddItem(ctx context.Context, item models.Item) error {
	now := s.clock()
	return s.items.InTransaction(ctx, func(tx repositories.Tx) error {
		list, err := s.stock.LoadAndUpdate(ctx, tx, now)
		if err != nil {
			return err
		}
		updated := models.StockList{
			LastModified: now,
			Items:        append(append([]models.Item{}, list.Items...), item),
		}
		if err := tx.Save(ctx, updated); err != nil {
			return fmt.Errorf("save stock list: %w", err)
		}
		return nil
	})
}

// DeleteItems brings the stock list up to date and removes the items with
// the given IDs. Unknown IDs are ignored; the write is skipped when
// nothing matched.
func (s *StockService) DeleteItems(ctx context.Context, ids ...uuid.UUID) error {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	now := s.clock()
	return s.items.InTransaction(ctx, func(tx repositories.Tx) error {
		list, err := s.stock.LoadAndUpdate(ctx, tx, now)
		if err != nil {
			return err
		}

		kept := make([]models.Item, 0, len(list.Items))
		for _, item := range list.Items {
			if !wanted[item.ID] {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(list.Items) {
			return nil
		}

		updated := models.StockList{LastModified: now, Items: kept}
		if err := tx.Save(ctx, updated); err != nil {
			return fmt.Errorf("save stock list: %w", err)
		}
		return nil
	})
}

func unpriced(list models.StockList) models.PricedStockList {
	items := make([]models.PricedItem, len(list.Items))
	for i, item := range list.Items {
		items[i] = models.PricedItem{Item: item}
	}
	return models.PricedStockList{LastModified: list.LastModified, Items: items}
}
