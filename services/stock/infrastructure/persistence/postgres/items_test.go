package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/ghuser/gildedstock/pkg/config"
	"github.com/ghuser/gildedstock/pkg/database"
	"github.com/ghuser/gildedstock/pkg/logger"
	"github.com/ghuser/gildedstock/services/stock/domain/repositories"
	"github.com/ghuser/gildedstock/services/stock/infrastructure/persistence/persistencetest"
	"github.com/ghuser/gildedstock/services/stock/infrastructure/persistence/postgres"
)

// Runs the shared store contract against a real database. Set
// TEST_DATABASE_URL to a migrated, disposable database to enable it.
func TestItems_Contract(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	log := logger.New(&config.Config{LogLevel: "error"})
	db, err := database.NewPool(context.Background(), url, log)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(db.Close)

	persistencetest.RunItemsContract(t, func(t *testing.T) repositories.Items {
		for _, table := range []string{"stock_items", "stock_list"} {
			if _, err := db.DB().Exec("DELETE FROM " + table); err != nil {
				t.Fatalf("reset %s: %v", table, err)
			}
		}
		return postgres.NewItems(db, nil)
	})
}
