// Package postgres implements the stock list store against PostgreSQL.
//
// Concurrency contract: every transaction takes a per-store advisory lock
// (pg_advisory_xact_lock) before touching the snapshot, so concurrent
// transactions on the same store block rather than interleave — one writer
// at a time, released automatically at commit or rollback. Transactions
// run at SERIALIZABLE isolation via pkg/database.WithTx.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/gildedstock/pkg/database"
	"github.com/ghuser/gildedstock/pkg/events"
	stockdomain "github.com/ghuser/gildedstock/services/stock/domain"
	domainevents "github.com/ghuser/gildedstock/services/stock/domain/events"
	"github.com/ghuser/gildedstock/services/stock/domain/models"
	"github.com/ghuser/gildedstock/services/stock/domain/repositories"
)

// stockLockKey is the advisory lock key guarding the single stock list.
// One key per logical store; this deployment holds exactly one.
const stockLockKey = 0x67_69_6c_64 // "gild"

// Items implements repositories.Items against PostgreSQL.
type Items struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItems returns an Items store backed by the given pool and event bus.
// The bus is used to publish a StockUpdatedEvent inside the same
// transaction as each Save; pass nil to disable publishing.
func NewItems(db *database.Database, bus *events.EventBus) *Items {
	return &Items{db: db, bus: bus}
}

// InTransaction runs fn inside one serializable store transaction holding
// the stock advisory lock.
func (s *Items) InTransaction(ctx context.Context, fn func(tx repositories.Tx) error) error {
	return s.db.WithTx(ctx, func(sqlTx *sql.Tx) error {
		if _, err := sqlTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", stockLockKey); err != nil {
			return fmt.Errorf("acquire stock lock: %w", err)
		}
		return fn(&itemsTx{sql: sqlTx, bus: s.bus})
	})
}

// itemsTx is the live-transaction handle handed to InTransaction callbacks.
type itemsTx struct {
	sql *sql.Tx
	bus *events.EventBus
}

// Load reconstructs the current snapshot. A store that has never been
// saved loads as an empty stock list with the NeverSaved timestamp. Any
// row that cannot rebuild a valid Item fails the whole load with an error
// matching domain.ErrStockListLoad.
func (t *itemsTx) Load(ctx context.Context) (models.StockList, error) {
	var lastModified time.Time
	err := t.sql.QueryRowContext(ctx,
		`SELECT last_modified FROM stock_list WHERE id = 1`,
	).Scan(&lastModified)
	if err == sql.ErrNoRows {
		return models.EmptyStockList(), nil
	}
	if err != nil {
		return models.StockList{}, fmt.Errorf("query stock list: %w", err)
	}

	rows, err := t.sql.QueryContext(ctx,
		`SELECT id, name, sell_by, quality FROM stock_items ORDER BY position`,
	)
	if err != nil {
		return models.StockList{}, fmt.Errorf("query stock items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	items := []models.Item{}
	for rows.Next() {
		var (
			id      uuid.UUID
			name    string
			sellBy  sql.NullTime
			quality int
		)
		if err := rows.Scan(&id, &name, &sellBy, &quality); err != nil {
			return models.StockList{}, fmt.Errorf("scan stock item: %w", err)
		}
		var sellByDate *time.Time
		if sellBy.Valid {
			// The column is a DATE; rebuild midnight UTC from the scanned
			// calendar components so the driver's session zone cannot shift
			// the day.
			y, m, d := sellBy.Time.Date()
			day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
			sellByDate = &day
		}
		item, err := models.NewItem(id, name, sellByDate, quality)
		if err != nil {
			return models.StockList{}, fmt.Errorf("%w: item %s: %w", stockdomain.ErrStockListLoad, id, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return models.StockList{}, fmt.Errorf("iterate stock items: %w", err)
	}

	return models.StockList{LastModified: lastModified.UTC(), Items: items}, nil
}

// Save atomically replaces the whole snapshot and publishes a
// StockUpdatedEvent within the same transaction.
func (t *itemsTx) Save(ctx context.Context, list models.StockList) error {
	_, err := t.sql.ExecContext(ctx,
		`INSERT INTO stock_list (id, last_modified) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET last_modified = EXCLUDED.last_modified`,
		list.LastModified.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert stock list: %w", err)
	}

	if _, err := t.sql.ExecContext(ctx, `DELETE FROM stock_items`); err != nil {
		return fmt.Errorf("clear stock items: %w", err)
	}

	for i, item := range list.Items {
		var sellBy sql.NullTime
		if item.SellBy != nil {
			// Store the sell-by's own calendar day. Converting the instant
			// to UTC would land a midnight date from an offset zone on the
			// previous day once truncated to the DATE column.
			y, m, d := item.SellBy.Date()
			sellBy = sql.NullTime{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
		}
		_, err := t.sql.ExecContext(ctx,
			`INSERT INTO stock_items (position, id, name, sell_by, quality)
			 VALUES ($1, $2, $3, $4, $5)`,
			i, item.ID, item.Name.String(), sellBy, item.Quality,
		)
		if err != nil {
			return fmt.Errorf("insert stock item %s: %w", item.ID, err)
		}
	}

	if t.bus != nil {
		if err := t.publishUpdated(list); err != nil {
			return fmt.Errorf("publish stock updated: %w", err)
		}
	}
	return nil
}

func (t *itemsTx) publishUpdated(list models.StockList) error {
	event := domainevents.StockUpdatedEvent{
		EventID:      uuid.New(),
		Version:      1,
		LastModified: list.LastModified,
		ItemCount:    len(list.Items),
		OccurredAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := t.bus.NewTxPublisher(t.sql)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicStockUpdated, msg)
}
