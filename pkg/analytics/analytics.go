// Package analytics is the fire-and-forget event sink for observational
// records (pricing failures, recovered panics, interesting state changes).
// Reporting must never block or fail the caller: implementations swallow
// their own errors.
package analytics

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/gildedstock/pkg/events"
	"github.com/ghuser/gildedstock/pkg/logger"
)

// TopicAnalytics is the Watermill topic the bus-backed sink publishes to.
const TopicAnalytics = "analytics.events"

// Event is any structured analytics record. EventName identifies the record
// type for downstream consumers; the rest of the struct is the payload.
type Event interface {
	EventName() string
}

// Analytics accepts structured events. Implementations are observational
// only: they never block the caller and never surface errors to it.
type Analytics interface {
	Report(ctx context.Context, e Event)
}

// Logging is an Analytics sink that writes events to the structured log.
type Logging struct {
	log logger.Logger
}

// NewLogging returns a log-backed Analytics sink.
func NewLogging(log logger.Logger) *Logging {
	return &Logging{log: log}
}

func (l *Logging) Report(ctx context.Context, e Event) {
	l.log.InfoContext(ctx, "analytics", "event", e.EventName(), "payload", e)
}

// Bus is an Analytics sink that publishes events to the EventBus so other
// processes can consume them. Publishing happens in a goroutine; failures
// are logged and dropped, never returned.
type Bus struct {
	bus *events.EventBus
	log logger.Logger
}

// NewBus returns an EventBus-backed Analytics sink.
func NewBus(bus *events.EventBus, log logger.Logger) *Bus {
	return &Bus{bus: bus, log: log}
}

func (b *Bus) Report(ctx context.Context, e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		b.log.ErrorContext(ctx, "analytics: marshal event", "event", e.EventName(), "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_name", e.EventName())

	// Fire and forget: enrichment must not wait on the sink.
	go func() {
		if err := b.bus.Publish(context.WithoutCancel(ctx), TopicAnalytics, msg); err != nil {
			b.log.Error("analytics: publish failed", "event", e.EventName(), "error", err)
		}
	}()
}

// Null is an Analytics sink that discards everything. Useful in tests.
type Null struct{}

func (Null) Report(context.Context, Event) {}
