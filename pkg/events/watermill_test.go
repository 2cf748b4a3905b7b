package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/gildedstock/pkg/config"
	"github.com/ghuser/gildedstock/pkg/logger"
)

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp
}

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func TestRetryWithBackoff(t *testing.T) {
	msg := message.NewMessage("id", []byte(`{"item_count":3}`))

	t.Run("no retry on first success", func(t *testing.T) {
		calls := 0
		handler := func(_ context.Context, _ *message.Message) error {
			calls++
			return nil
		}
		if err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger()); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		handler := func(_ context.Context, _ *message.Message) error {
			calls++
			if calls < 3 {
				return errors.New("transient error")
			}
			return nil
		}
		if err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger()); err != nil {
			t.Fatalf("expected nil after eventual success, got %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("surfaces the error once retries exhaust", func(t *testing.T) {
		calls := 0
		handler := func(_ context.Context, _ *message.Message) error {
			calls++
			return errors.New("permanent error")
		}
		err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
		if err == nil {
			t.Fatal("expected error after exhausted retries")
		}
		if calls != maxRetries {
			t.Errorf("expected %d calls, got %d", maxRetries, calls)
		}
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		handler := func(_ context.Context, _ *message.Message) error {
			calls++
			return errors.New("error")
		}
		err := retryWithBackoff(ctx, msg, handler, maxRetries, time.Second, nopLogger())
		if err == nil {
			t.Fatal("expected error from cancelled context")
		}
		if calls != 1 {
			t.Errorf("expected 1 call before context cancel, got %d", calls)
		}
	})
}

// TestOTelPropagation verifies that trace context injected via the same
// propagation path used by Publish/Subscribe round-trips correctly.
func TestOTelPropagation(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	ctx, span := otel.Tracer("test").Start(context.Background(), "save-stock-list")
	defer span.End()
	wantTraceID := span.SpanContext().TraceID()

	// Publish side: inject trace context into message metadata.
	msg := message.NewMessage("id", []byte(`{"item_count":3}`))
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}

	// Subscribe side: extract trace context from message metadata.
	extractCarrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		extractCarrier[k] = v
	}
	msgCtx := otel.GetTextMapPropagator().Extract(context.Background(), extractCarrier)

	gotSpan := trace.SpanFromContext(msgCtx)
	if !gotSpan.SpanContext().IsValid() {
		t.Fatal("extracted span context is not valid")
	}
	if gotSpan.SpanContext().TraceID() != wantTraceID {
		t.Errorf("trace ID mismatch: want %s, got %s", wantTraceID, gotSpan.SpanContext().TraceID())
	}
}
