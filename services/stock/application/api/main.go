package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/gildedstock/pkg/app"
	"github.com/ghuser/gildedstock/pkg/auth"
	"github.com/ghuser/gildedstock/pkg/cache"
	"github.com/ghuser/gildedstock/services/stock/application/handlers"
	appsvcs "github.com/ghuser/gildedstock/services/stock/application/services"
)

// StockRoutes registers stock endpoints on the provided chi router.
// Mutating routes require an authenticated stockkeeper session.
func StockRoutes(r chi.Router, a *app.Application) error {
	svcs, err := appsvcs.New(a)
	if err != nil {
		return err
	}
	zone := a.Cfg.StoreLocation()

	r.Group(func(r chi.Router) {
		r.Route("/stock", func(r chi.Router) {
			r.Get("/", handlers.NewGetStockHandler(svcs, zone, nil).Execute)
			if a.Redis != nil {
				summaries := cache.NewStockSummaryCache(a.Redis)
				r.Get("/summary", handlers.NewGetSummaryHandler(summaries).Execute)
			}
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
				r.Post("/items", handlers.NewPostItemHandler(svcs, zone).Execute)
				r.Delete("/items", handlers.NewDeleteItemsHandler(svcs).Execute)
			})
		})
	})
	return nil
}
