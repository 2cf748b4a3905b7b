package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/gildedstock/pkg/errhttp"
	"github.com/ghuser/gildedstock/pkg/httpx"
	appsvcs "github.com/ghuser/gildedstock/services/stock/application/services"
	"github.com/ghuser/gildedstock/services/stock/domain/models"
)

// StockItemResponse is one row of the stock listing.
type StockItemResponse struct {
	ID         string `json:"id"           example:"123e4567-e89b-12d3-a456-426614174000"`
	Name       string `json:"name"         example:"Aged Brie"`
	SellBy     string `json:"sell_by"      example:"2026-10-29"` // empty when the item never expires
	SellByDays *int   `json:"sell_by_days" example:"3"`
	Quality    int    `json:"quality"      example:"42"`
	Price      string `json:"price"        example:"£6.09"` // empty when absent, "error" on failure
} // @name StockItemResponse

// StockListResponse is returned by GET /stock.
type StockListResponse struct {
	Now   string              `json:"now" example:"2026-08-30"`
	Items []StockItemResponse `json:"items"`
} // @name StockListResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"name must not be blank"`
} // @name ErrorResponse

// GetStockHandler handles GET /stock requests.
type GetStockHandler struct {
	svc   *appsvcs.Services
	zone  *time.Location
	clock func() time.Time
}

// NewGetStockHandler returns a GetStockHandler backed by the given services.
func NewGetStockHandler(svc *appsvcs.Services, zone *time.Location, clock func() time.Time) *GetStockHandler {
	if clock == nil {
		clock = time.Now
	}
	return &GetStockHandler{svc: svc, zone: zone, clock: clock}
}

// Execute brings the stock list up to date and renders it with prices.
//
//	@Summary		List stock
//	@Description	Returns the up-to-date stock list, priced per item
//	@Tags			stock
//	@Produce		json
//	@Success		200	{object}	StockListResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/stock [get]
func (h *GetStockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Stock.LoadPricedStockList(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	today := h.clock().In(h.zone)
	items := make([]StockItemResponse, len(list.Items))
	for i, item := range list.Items {
		items[i] = toItemResponse(item, today)
	}
	httpx.JSON(w, http.StatusOK, StockListResponse{
		Now:   today.Format(time.DateOnly),
		Items: items,
	})
}

func toItemResponse(item models.PricedItem, today time.Time) StockItemResponse {
	resp := StockItemResponse{
		ID:      item.ID.String(),
		Name:    item.Name.String(),
		Quality: item.Quality,
	}
	if item.SellBy != nil {
		resp.SellBy = item.SellBy.Format(time.DateOnly)
		days := item.DaysUntilSellBy(today)
		resp.SellByDays = &days
	}
	if item.Outcome != nil {
		switch {
		case item.Outcome.Failed():
			resp.Price = "error"
		case item.Outcome.Price != nil:
			resp.Price = item.Outcome.Price.String()
		}
	}
	return resp
}
