package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/gildedstock/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

func runHealth(t *testing.T, checks httpx.HealthChecks) (int, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, resp
}

func TestHealthHandler(t *testing.T) {
	ok := &stubChecker{}
	down := &stubChecker{err: errors.New("conn refused")}

	t.Run("all healthy", func(t *testing.T) {
		code, resp := runHealth(t, httpx.HealthChecks{Database: ok, Redis: ok, EventBus: ok})
		if code != http.StatusOK || resp["status"] != "ok" {
			t.Fatalf("got %d %+v", code, resp)
		}
	})

	t.Run("one dependency down degrades the whole report", func(t *testing.T) {
		code, resp := runHealth(t, httpx.HealthChecks{Database: down, Redis: ok, EventBus: ok})
		if code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", code)
		}
		if resp["status"] != "degraded" || resp["database"] != "unreachable" || resp["redis"] != "ok" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("all down", func(t *testing.T) {
		code, resp := runHealth(t, httpx.HealthChecks{Database: down, Redis: down, EventBus: down})
		if code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", code)
		}
		for _, k := range []string{"database", "redis", "event_bus"} {
			if resp[k] != "unreachable" {
				t.Fatalf("expected %s unreachable: %+v", k, resp)
			}
		}
	})

	t.Run("missing dependency is skipped, not probed", func(t *testing.T) {
		code, resp := runHealth(t, httpx.HealthChecks{Database: ok, EventBus: ok})
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if resp["status"] != "ok" || resp["redis"] != "skipped" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("responds with JSON content type", func(t *testing.T) {
		rr := httptest.NewRecorder()
		httpx.HealthHandler(httpx.HealthChecks{Database: ok, Redis: ok, EventBus: ok}).
			ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
		if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
			t.Fatalf("Content-Type: got %q", ct)
		}
	})
}
