package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ghuser/gildedstock/pkg/analytics"
	"github.com/ghuser/gildedstock/services/stock/domain/models"
	"github.com/ghuser/gildedstock/services/stock/domain/repositories"
)

// defaultMaxConcurrentPricing bounds the pricing fan-out so a huge stock
// list cannot open an unbounded number of collaborator calls at once.
const defaultMaxConcurrentPricing = 16

// PricingFunc is the injected pricing collaborator: a price, nil for an
// intentional absence, or an error for a failure. It is treated as a black
// box — even a panicking implementation only costs its own item.
type PricingFunc func(ctx context.Context, item models.Item) (*models.Price, error)

// PricingFailedEvent is reported to analytics once per item whose pricing
// call failed.
type PricingFailedEvent struct {
	ItemID uuid.UUID `json:"item_id"`
	Name   string    `json:"name"`
	Reason string    `json:"reason"`
}

func (PricingFailedEvent) EventName() string { return "pricing.failed" }

// PricedLoader runs the stock updater and enriches the result with one
// concurrent pricing call per item. Failures are isolated per item and
// recorded in the outcome; only the underlying stock list load can fail
// the whole operation.
type PricedLoader struct {
	stock         *Stock
	pricing       PricingFunc
	analytics     analytics.Analytics
	maxConcurrent int
}

// NewPricedLoader wires the enrichment stage. sink must not be nil; use
// analytics.Null{} to discard reports.
func NewPricedLoader(stock *Stock, pricing PricingFunc, sink analytics.Analytics) *PricedLoader {
	return &PricedLoader{
		stock:         stock,
		pricing:       pricing,
		analytics:     sink,
		maxConcurrent: defaultMaxConcurrentPricing,
	}
}

// Load updates the stock list inside tx, then fans out pricing calls and
// joins before returning — item order in the result matches the stock
// list regardless of which call finishes first, and no partial result is
// returned early.
func (l *PricedLoader) Load(ctx context.Context, tx repositories.Tx, now time.Time) (models.PricedStockList, error) {
	list, err := l.stock.LoadAndUpdate(ctx, tx, now)
	if err != nil {
		return models.PricedStockList{}, fmt.Errorf("price enrichment: %w", err)
	}

	priced := make([]models.PricedItem, len(list.Items))
	g := new(errgroup.Group)
	g.SetLimit(l.maxConcurrent)
	for i, item := range list.Items {
		g.Go(func() error {
			priced[i] = models.PricedItem{Item: item, Outcome: l.priceOne(ctx, item)}
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors; failures live in the outcomes

	return models.PricedStockList{LastModified: list.LastModified, Items: priced}, nil
}

func (l *PricedLoader) priceOne(ctx context.Context, item models.Item) *models.PriceOutcome {
	price, err := l.safePrice(ctx, item)
	if err != nil {
		l.analytics.Report(ctx, PricingFailedEvent{
			ItemID: item.ID,
			Name:   item.Name.String(),
			Reason: err.Error(),
		})
		return &models.PriceOutcome{Err: err}
	}
	return &models.PriceOutcome{Price: price}
}

// safePrice shields the fan-out from a panicking collaborator: the panic
// degrades to that item's failure instead of tearing down the batch.
func (l *PricedLoader) safePrice(ctx context.Context, item models.Item) (price *models.Price, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pricing panicked: %v", p)
		}
	}()
	return l.pricing(ctx, item)
}
