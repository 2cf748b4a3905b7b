package inmemory_test

import (
	"testing"

	"github.com/ghuser/gildedstock/services/stock/domain/repositories"
	"github.com/ghuser/gildedstock/services/stock/infrastructure/persistence/inmemory"
	"github.com/ghuser/gildedstock/services/stock/infrastructure/persistence/persistencetest"
)

func TestItems_Contract(t *testing.T) {
	persistencetest.RunItemsContract(t, func(t *testing.T) repositories.Items {
		return inmemory.NewItems()
	})
}
