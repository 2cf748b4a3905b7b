// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/gildedstock/pkg/httpx"
	stockdomain "github.com/ghuser/gildedstock/services/stock/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, stockdomain.ErrBlankName):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, stockdomain.ErrNegativeQuality):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, stockdomain.ErrStockListLoad):
		return http.StatusInternalServerError // 500: stored data is broken, not the request
	default:
		return http.StatusInternalServerError // 500
	}
}
