package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/gildedstock/pkg/errhttp"
	pkgvalidator "github.com/ghuser/gildedstock/pkg/validator"
	appsvcs "github.com/ghuser/gildedstock/services/stock/application/services"
)

// DeleteItemsRequest is the request body for DELETE /stock/items.
type DeleteItemsRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name DeleteItemsRequest

// DeleteItemsHandler handles DELETE /stock/items requests.
type DeleteItemsHandler struct {
	svc *appsvcs.Services
}

// NewDeleteItemsHandler returns a DeleteItemsHandler backed by the given services.
func NewDeleteItemsHandler(svc *appsvcs.Services) *DeleteItemsHandler {
	return &DeleteItemsHandler{svc: svc}
}

// Execute removes items from the stock list. Unknown IDs are ignored.
//
//	@Summary		Delete stock items
//	@Description	Removes the items with the given IDs from the stock list
//	@Tags			stock
//	@Accept			json
//	@Param			request	body	DeleteItemsRequest	true	"IDs to remove"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/stock/items [delete]
func (h *DeleteItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[DeleteItemsRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Stock.DeleteItems(r.Context(), req.IDs...); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
