package repositories

import (
	"context"

	"github.com/ghuser/gildedstock/services/stock/domain/models"
)

// Tx is the handle to a live store transaction. Load and Save are only
// reachable through a Tx, so snapshot access outside a transaction is
// unrepresentable.
type Tx interface {
	// Load returns the most recently committed stock list snapshot, or an
	// empty snapshot with the NeverSaved timestamp before any save. It
	// fails with an error matching domain.ErrStockListLoad when persisted
	// rows cannot reconstruct valid items — the whole load fails rather
	// than silently dropping a bad row.
	Load(ctx context.Context) (models.StockList, error)

	// Save atomically replaces the whole snapshot. Readers in other
	// transactions never observe a mix of old and new items.
	Save(ctx context.Context, list models.StockList) error
}

// Items is the persistence interface for the single stock list held by a
// store. The domain layer owns this interface; infrastructure implements it.
//
// Guarantees required of implementations:
//   - at most one transaction holds write access at a time; concurrent
//     transactions on the same store block rather than interleave,
//   - a transaction whose fn returns an error commits nothing,
//   - a Load observes the result of the most recently committed Save.
type Items interface {
	InTransaction(ctx context.Context, fn func(tx Tx) error) error
}
