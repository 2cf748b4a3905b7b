package errhttp_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/gildedstock/pkg/errhttp"
	stockdomain "github.com/ghuser/gildedstock/services/stock/domain"
)

func TestWriteError_statusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"blank name", stockdomain.ErrBlankName, http.StatusUnprocessableEntity},
		{"negative quality", stockdomain.NegativeQualityError{Actual: -1}, http.StatusUnprocessableEntity},
		{"wrapped negative quality", fmt.Errorf("create item: %w", stockdomain.NegativeQualityError{Actual: -7}), http.StatusUnprocessableEntity},
		{"stock list load", fmt.Errorf("%w: bad row", stockdomain.ErrStockListLoad), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			errhttp.WriteError(w, tc.err)
			if w.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
				t.Errorf("unexpected Content-Type: %q", ct)
			}
		})
	}
}
