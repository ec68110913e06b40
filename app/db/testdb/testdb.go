// Package testdb opens throwaway in-memory SQLite databases for tests. The
// schema comes from the same AutoMigrate the migrate command runs, so unique
// indexes and constraints behave like production.
package testdb

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tiendita/storefront/app/models"
	"github.com/tiendita/storefront/app/models/migrations"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated database private to the calling test. The shared
// cache keeps the in-memory database alive across the pool's connections;
// the busy timeout lets concurrent writers queue instead of failing.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

// MustCreateProduct inserts a product with the given base price in cents.
func MustCreateProduct(t *testing.T, db *gorm.DB, name string, price int64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:  name,
		Slug:  fmt.Sprintf("%s-%s", name, uuid.NewString()[:6]),
		Price: price,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// MustCreateVariant inserts a variant under the product. priceOverride may
// be nil to inherit the product price.
func MustCreateVariant(t *testing.T, db *gorm.DB, product *models.Product, priceOverride *int64, stock int) *models.Variant {
	t.Helper()

	variant := &models.Variant{
		ProductID: product.ID,
		Sku:       fmt.Sprintf("SKU-%s", uuid.NewString()[:8]),
		Name:      "Default",
		Price:     priceOverride,
		Stock:     stock,
	}
	require.NoError(t, db.Create(variant).Error)
	return variant
}

// Ptr is a shorthand for price-override literals in tests.
func Ptr(v int64) *int64 {
	return &v
}
