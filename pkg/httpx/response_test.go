package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/gildedstock/pkg/httpx"
)

func TestJSON(t *testing.T) {
	t.Run("sets status and headers", func(t *testing.T) {
		w := httptest.NewRecorder()
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
			t.Errorf("unexpected Content-Type: %q", ct)
		}
		if xct := w.Header().Get("X-Content-Type-Options"); xct != "nosniff" {
			t.Errorf("expected nosniff, got %q", xct)
		}
	})

	t.Run("encodes the body", func(t *testing.T) {
		w := httptest.NewRecorder()
		httpx.JSON(w, http.StatusCreated, map[string]string{"id": "abc"})

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if body["id"] != "abc" {
			t.Errorf("unexpected body: %v", body)
		}
		if w.Code != http.StatusCreated {
			t.Errorf("expected 201, got %d", w.Code)
		}
	})
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSONError(w, http.StatusBadRequest, "something went wrong")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["error"] != "something went wrong" {
		t.Errorf("unexpected error message: %q", body["error"])
	}
}

func TestSafeError(t *testing.T) {
	boom := errors.New("pq: relation stock_items does not exist")

	t.Run("masks 5xx details in production", func(t *testing.T) {
		got := httpx.SafeError(boom, http.StatusInternalServerError, true)
		if got != http.StatusText(http.StatusInternalServerError) {
			t.Errorf("expected generic message, got %q", got)
		}
	})

	t.Run("keeps details for 4xx and in development", func(t *testing.T) {
		if got := httpx.SafeError(boom, http.StatusUnprocessableEntity, true); got != boom.Error() {
			t.Errorf("expected raw message, got %q", got)
		}
		if got := httpx.SafeError(boom, http.StatusInternalServerError, false); got != boom.Error() {
			t.Errorf("expected raw message, got %q", got)
		}
	})
}
