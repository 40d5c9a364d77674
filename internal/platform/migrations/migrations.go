package migrations

import (
	"gorm.io/gorm"

	accountspg "github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/persistence/postgres"
	catalogpg "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	orderspg "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/persistence/postgres"
	storespg "github.com/Apurer/go-gin-storefront/internal/domains/stores/adapters/persistence/postgres"
)

// Run applies the schema owned by each bounded context's persistence adapter.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	var models []any
	for _, owned := range [][]any{
		storespg.Models(),
		catalogpg.Models(),
		orderspg.Models(),
		accountspg.Models(),
	} {
		models = append(models, owned...)
	}
	return db.AutoMigrate(models...)
}
