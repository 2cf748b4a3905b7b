package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/gildedstock/pkg/errhttp"
	"github.com/ghuser/gildedstock/pkg/httpx"
	pkgvalidator "github.com/ghuser/gildedstock/pkg/validator"
	appsvcs "github.com/ghuser/gildedstock/services/stock/application/services"
	"github.com/ghuser/gildedstock/services/stock/domain/models"
)

// AddItemRequest is the request body for POST /stock/items.
type AddItemRequest struct {
	Name    string `json:"name"    validate:"required,max=255" example:"Aged Brie"`
	SellBy  string `json:"sell_by" validate:"omitempty,datetime=2006-01-02" example:"2026-10-29"` // omit for items that never expire
	Quality int    `json:"quality" validate:"min=0" example:"42"`
} // @name AddItemRequest

// AddItemResponse is returned on successful item creation.
type AddItemResponse struct {
	ID uuid.UUID `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name AddItemResponse

// PostItemHandler handles POST /stock/items requests.
type PostItemHandler struct {
	svc  *appsvcs.Services
	zone *time.Location
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services, zone *time.Location) *PostItemHandler {
	return &PostItemHandler{svc: svc, zone: zone}
}

// Execute adds an item to the stock list.
//
//	@Summary		Add stock item
//	@Description	Appends a new item to the stock list
//	@Tags			stock
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AddItemRequest	true	"Item to add"
//	@Success		201		{object}	AddItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/stock/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[AddItemRequest](w, r)
	if !ok {
		return
	}

	var sellBy *time.Time
	if req.SellBy != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, req.SellBy, h.zone)
		if err != nil {
			httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "sell_by must be a YYYY-MM-DD date"})
			return
		}
		sellBy = &parsed
	}

	item, err := models.NewItem(uuid.New(), req.Name, sellBy, req.Quality)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	if err := h.svc.Stock.AddItem(r.Context(), item); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, AddItemResponse{ID: item.ID})
}
