package services

import (
	"time"

	"github.com/ghuser/gildedstock/pkg/app"
	"github.com/ghuser/gildedstock/pkg/cache"
	"github.com/ghuser/gildedstock/services/stock/infrastructure/persistence/postgres"
	"github.com/ghuser/gildedstock/services/stock/infrastructure/pricing"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Stock *StockService
}

// New wires the stock application services with infrastructure from the
// Application container.
func New(a *app.Application) (*Services, error) {
	items := postgres.NewItems(a.Db, a.EventBus)
	stock := NewStock(a.Cfg.StoreLocation())

	var loader *PricedLoader
	if a.Cfg.PricingEnabled {
		var priceCache *cache.PriceCache
		if a.Redis != nil {
			priceCache = cache.NewPriceCache(a.Redis)
		}
		client, err := pricing.NewValueElfClient(a.Cfg.PricingURL, priceCache, a.Logger)
		if err != nil {
			return nil, err
		}
		loader = NewPricedLoader(stock, client.Price, a.Analytics)
	}

	return &Services{
		Stock: NewStockService(items, stock, loader, a.Cfg.PricingEnabled, time.Now),
	}, nil
}
