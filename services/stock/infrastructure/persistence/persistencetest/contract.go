// Package persistencetest holds the behavioural contract every stock list
// store must satisfy. Store implementations run RunItemsContract from their
// own test files, so postgres and in-memory stay interchangeable.
package persistencetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/gildedstock/services/stock/domain/models"
	"github.com/ghuser/gildedstock/services/stock/domain/repositories"
)

// RunItemsContract exercises the transaction and round-trip guarantees of
// a store. newStore must return a fresh, empty store per call.
func RunItemsContract(t *testing.T, newStore func(t *testing.T) repositories.Items) {
	t.Helper()
	ctx := context.Background()

	t.Run("returns empty stock list before any save", func(t *testing.T) {
		store := newStore(t)
		err := store.InTransaction(ctx, func(tx repositories.Tx) error {
			got, err := tx.Load(ctx)
			if err != nil {
				return err
			}
			if !got.Equal(models.EmptyStockList()) {
				t.Errorf("expected empty stock list, got %+v", got)
			}
			if got.Items == nil {
				t.Error("expected non-nil empty item slice")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("returns last saved stock list", func(t *testing.T) {
		store := newStore(t)
		initial := sampleStockList()
		err := store.InTransaction(ctx, func(tx repositories.Tx) error {
			if err := tx.Save(ctx, initial); err != nil {
				return err
			}
			got, err := tx.Load(ctx)
			if err != nil {
				return err
			}
			if !got.Equal(initial) {
				t.Errorf("load after save: got %+v, want %+v", got, initial)
			}

			modified := models.StockList{
				LastModified: initial.LastModified.Add(time.Hour),
				Items:        initial.Items[1:],
			}
			if err := tx.Save(ctx, modified); err != nil {
				return err
			}
			got, err = tx.Load(ctx)
			if err != nil {
				return err
			}
			if !got.Equal(modified) {
				t.Errorf("load after second save: got %+v, want %+v", got, modified)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("can save an empty stock list", func(t *testing.T) {
		store := newStore(t)
		empty := models.StockList{
			LastModified: time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC),
			Items:        []models.Item{},
		}
		err := store.InTransaction(ctx, func(tx repositories.Tx) error {
			if err := tx.Save(ctx, empty); err != nil {
				return err
			}
			got, err := tx.Load(ctx)
			if err != nil {
				return err
			}
			if !got.Equal(empty) {
				t.Errorf("got %+v, want %+v", got, empty)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("last modified round-trips across instants", func(t *testing.T) {
		instants := []string{
			"1970-01-01T00:00:00Z",
			"2022-12-31T23:59:59Z",
			"2023-01-01T00:00:00Z",
			"2023-06-30T23:59:59Z", // BST in the store zone
			"2023-07-01T00:00:00Z",
		}
		for _, candidate := range instants {
			t.Run(candidate, func(t *testing.T) {
				store := newStore(t)
				instant, err := time.Parse(time.RFC3339, candidate)
				if err != nil {
					t.Fatalf("parse instant: %v", err)
				}
				list := sampleStockList()
				list.LastModified = instant

				if err := store.InTransaction(ctx, func(tx repositories.Tx) error {
					return tx.Save(ctx, list)
				}); err != nil {
					t.Fatalf("save: %v", err)
				}
				if err := store.InTransaction(ctx, func(tx repositories.Tx) error {
					got, err := tx.Load(ctx)
					if err != nil {
						return err
					}
					if !got.Equal(list) {
						t.Errorf("got %+v, want %+v", got, list)
					}
					return nil
				}); err != nil {
					t.Fatalf("load: %v", err)
				}
			})
		}
	})

	t.Run("sell-by keeps its calendar day when created in an offset zone", func(t *testing.T) {
		store := newStore(t)
		london, err := time.LoadLocation("Europe/London")
		if err != nil {
			t.Fatalf("load zone: %v", err)
		}
		// Midnight London during BST is 23:00 UTC the previous day; the
		// stored date must still be June 15th.
		sellBy := time.Date(2026, 6, 15, 0, 0, 0, 0, london)
		list := models.StockList{
			LastModified: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
			Items:        []models.Item{mustItem("strawberries", &sellBy, 20)},
		}

		if err := store.InTransaction(ctx, func(tx repositories.Tx) error {
			return tx.Save(ctx, list)
		}); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := store.InTransaction(ctx, func(tx repositories.Tx) error {
			got, err := tx.Load(ctx)
			if err != nil {
				return err
			}
			if !got.Equal(list) {
				t.Errorf("got %+v, want %+v", got, list)
			}
			y, m, d := got.Items[0].SellBy.Date()
			if y != 2026 || m != time.June || d != 15 {
				t.Errorf("loaded sell-by day = %04d-%02d-%02d, want 2026-06-15", y, m, d)
			}
			return nil
		}); err != nil {
			t.Fatalf("load: %v", err)
		}
	})

	t.Run("save is not visible when the transaction fails", func(t *testing.T) {
		store := newStore(t)
		failure := func() error { return context.Canceled }
		err := store.InTransaction(ctx, func(tx repositories.Tx) error {
			if err := tx.Save(ctx, sampleStockList()); err != nil {
				return err
			}
			return failure()
		})
		if err == nil {
			t.Fatal("expected the transaction error to propagate")
		}
		if err := store.InTransaction(ctx, func(tx repositories.Tx) error {
			got, err := tx.Load(ctx)
			if err != nil {
				return err
			}
			if !got.Equal(models.EmptyStockList()) {
				t.Errorf("rolled-back save leaked: %+v", got)
			}
			return nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("concurrent transactions block rather than interleave", func(t *testing.T) {
		store := newStore(t)
		initial := sampleStockList()

		holding := make(chan struct{})
		release := make(chan struct{})
		firstDone := make(chan error, 1)
		go func() {
			firstDone <- store.InTransaction(ctx, func(tx repositories.Tx) error {
				if err := tx.Save(ctx, initial); err != nil {
					return err
				}
				close(holding)
				<-release
				return nil
			})
		}()
		<-holding

		secondSaw := make(chan models.StockList, 1)
		go func() {
			_ = store.InTransaction(ctx, func(tx repositories.Tx) error {
				got, err := tx.Load(ctx)
				if err != nil {
					return err
				}
				secondSaw <- got
				return nil
			})
		}()

		select {
		case <-secondSaw:
			t.Fatal("second transaction proceeded while the first held the store")
		case <-time.After(50 * time.Millisecond):
		}

		close(release)
		if err := <-firstDone; err != nil {
			t.Fatalf("first transaction: %v", err)
		}
		got := <-secondSaw
		if !got.Equal(initial) {
			t.Errorf("second transaction saw %+v, want the committed %+v", got, initial)
		}
	})
}

// sampleStockList mirrors the fixture the store tests share: one dated
// normal item and one undated legacy item with quality above the cap.
func sampleStockList() models.StockList {
	oct28 := time.Date(2023, 10, 28, 0, 0, 0, 0, time.UTC)
	banana := mustItem("banana", &oct28, 42)
	kumquat := mustItem("kumquat", nil, 101)
	return models.StockList{
		LastModified: time.Date(2022, 2, 9, 23, 59, 59, 0, time.UTC),
		Items:        []models.Item{banana, kumquat},
	}
}

func mustItem(name string, sellBy *time.Time, quality int) models.Item {
	item, err := models.NewItem(uuid.New(), name, sellBy, quality)
	if err != nil {
		panic(err)
	}
	return item
}
