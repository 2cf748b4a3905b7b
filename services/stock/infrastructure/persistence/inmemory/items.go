// Package inmemory implements the stock list store in process memory.
// It honors the same transaction contract as the postgres store — one
// writer at a time, all-or-nothing commit — and backs tests and local
// development without a database.
package inmemory

import (
	"context"
	"sync"

	"github.com/ghuser/gildedstock/services/stock/domain/models"
	"github.com/ghuser/gildedstock/services/stock/domain/repositories"
)

// Items implements repositories.Items with a mutex-serialized snapshot.
// Concurrent transactions block on the mutex, matching the blocking
// single-writer semantics of the postgres store.
type Items struct {
	mu   sync.Mutex
	list models.StockList
}

// NewItems returns an empty in-memory store.
func NewItems() *Items {
	return &Items{list: models.EmptyStockList()}
}

// InTransaction runs fn holding the store lock. Saves are buffered in the
// transaction handle and only become visible when fn returns nil.
func (s *Items) InTransaction(ctx context.Context, fn func(tx repositories.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &itemsTx{working: cloneList(s.list)}
	if err := fn(tx); err != nil {
		return err
	}
	s.list = tx.working
	return nil
}

type itemsTx struct {
	working models.StockList
}

// Load returns the transaction's view of the snapshot: the last committed
// state plus any saves made earlier in this transaction.
func (t *itemsTx) Load(ctx context.Context) (models.StockList, error) {
	return cloneList(t.working), nil
}

// Save replaces the transaction's working snapshot. It commits only when
// the surrounding InTransaction callback returns nil.
func (t *itemsTx) Save(ctx context.Context, list models.StockList) error {
	t.working = cloneList(list)
	return nil
}

func cloneList(list models.StockList) models.StockList {
	items := make([]models.Item, len(list.Items))
	copy(items, list.Items)
	return models.StockList{LastModified: list.LastModified, Items: items}
}
