package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicStockUpdated is the Watermill topic published whenever a new stock
// list snapshot is persisted.
const TopicStockUpdated = "stock.updated"

// StockUpdatedEvent is published after a stock list snapshot is saved.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicStockUpdated).
type StockUpdatedEvent struct {
	EventID      uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version      int       `json:"version"`  // Schema version; increment on breaking changes
	LastModified time.Time `json:"last_modified"`
	ItemCount    int       `json:"item_count"`
	OccurredAt   time.Time `json:"occurred_at"`
}
