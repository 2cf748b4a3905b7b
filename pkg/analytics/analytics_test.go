package analytics

import (
	"context"
	"testing"

	"github.com/ghuser/gildedstock/pkg/config"
	"github.com/ghuser/gildedstock/pkg/logger"
)

type testEvent struct {
	Value string `json:"value"`
}

func (testEvent) EventName() string { return "test.event" }

func TestLoggingReport(t *testing.T) {
	log := logger.New(&config.Config{LogLevel: "error"})
	sink := NewLogging(log)

	// Report must never fail or block the caller.
	sink.Report(context.Background(), testEvent{Value: "hello"})
}

func TestNullReport(t *testing.T) {
	Null{}.Report(context.Background(), testEvent{})
}
