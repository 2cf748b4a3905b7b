package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/gildedstock/pkg/cache"
	"github.com/ghuser/gildedstock/pkg/httpx"
)

// StockSummaryResponse is returned by GET /stock/summary.
type StockSummaryResponse struct {
	LastModified time.Time `json:"last_modified" example:"2026-08-30T09:00:00Z"`
	ItemCount    int       `json:"item_count"    example:"12"`
} // @name StockSummaryResponse

// GetSummaryHandler handles GET /stock/summary requests. It serves the
// cached summary maintained by the worker, so it never touches the store.
type GetSummaryHandler struct {
	summaries *cache.StockSummaryCache
}

// NewGetSummaryHandler returns a GetSummaryHandler backed by the given cache.
func NewGetSummaryHandler(summaries *cache.StockSummaryCache) *GetSummaryHandler {
	return &GetSummaryHandler{summaries: summaries}
}

// Execute serves the cached stock summary.
//
//	@Summary		Stock summary
//	@Description	Returns the cached last-modified instant and item count
//	@Tags			stock
//	@Produce		json
//	@Success		200	{object}	StockSummaryResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/stock/summary [get]
func (h *GetSummaryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summaries.Get(r.Context())
	if err != nil {
		if cache.IsMiss(err) {
			httpx.JSONError(w, http.StatusNotFound, "stock summary not available yet")
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed to read stock summary")
		return
	}

	httpx.JSON(w, http.StatusOK, StockSummaryResponse{
		LastModified: summary.LastModified,
		ItemCount:    summary.ItemCount,
	})
}
