package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendita/storefront/app/db/testdb"
	"github.com/tiendita/storefront/app/models"
	"gorm.io/gorm"
)

func TestFindVariantPreloadsProduct(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	product := testdb.MustCreateProduct(t, db, "camiseta", 2999)
	variant := testdb.MustCreateVariant(t, db, product, nil, 10)

	found, err := repo.FindVariant(ctx, variant.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Product)
	assert.Equal(t, product.ID, found.Product.ID)
	assert.Equal(t, int64(2999), found.EffectivePrice())
}

func TestFindVariantUnknown(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCatalogRepository(db)

	_, err := repo.FindVariant(context.Background(), "no-such-variant")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDecrementStock(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	product := testdb.MustCreateProduct(t, db, "bolso", 14999)
	variant := testdb.MustCreateVariant(t, db, product, nil, 5)

	ok, err := repo.DecrementStock(ctx, nil, variant.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	var reloaded models.Variant
	require.NoError(t, db.First(&reloaded, "id = ?", variant.ID).Error)
	assert.Equal(t, 2, reloaded.Stock)
}

func TestDecrementStockRefusesBelowFloor(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	product := testdb.MustCreateProduct(t, db, "bolso", 14999)
	variant := testdb.MustCreateVariant(t, db, product, nil, 2)

	ok, err := repo.DecrementStock(ctx, nil, variant.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	var reloaded models.Variant
	require.NoError(t, db.First(&reloaded, "id = ?", variant.ID).Error)
	assert.Equal(t, 2, reloaded.Stock, "a refused decrement must not change stock")
}

func TestDecrementStockUnknownVariant(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCatalogRepository(db)

	ok, err := repo.DecrementStock(context.Background(), nil, "no-such-variant", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetByCategorySlugPaginated(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	category := &models.Category{Name: "Ropa", Slug: "ropa"}
	require.NoError(t, db.Create(category).Error)

	older := testdb.MustCreateProduct(t, db, "camiseta", 2999)
	newer := testdb.MustCreateProduct(t, db, "chaqueta", 8999)
	testdb.MustCreateProduct(t, db, "bolso", 14999)

	require.NoError(t, db.Model(older).Updates(map[string]interface{}{
		"category_id": category.ID,
		"created_at":  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}).Error)
	require.NoError(t, db.Model(newer).Updates(map[string]interface{}{
		"category_id": category.ID,
		"created_at":  time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
	}).Error)

	products, total, err := repo.GetByCategorySlugPaginated(ctx, "ropa", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, products, 2)
	assert.Equal(t, newer.ID, products[0].ID, "newest product first")
	assert.Equal(t, older.ID, products[1].ID)

	products, total, err = repo.GetByCategorySlugPaginated(ctx, "no-such-category", 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, products)
}

func TestGetProductByID(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCatalogRepository(db)

	product := testdb.MustCreateProduct(t, db, "camiseta", 2999)
	testdb.MustCreateVariant(t, db, product, nil, 10)

	found, err := repo.GetProductByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Slug, found.Slug)
	assert.Len(t, found.Variants, 1)
}

func TestGetBySlugOrdersImages(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCatalogRepository(db)

	product := testdb.MustCreateProduct(t, db, "chaqueta", 8999)
	require.NoError(t, db.Create(&models.ProductImage{ProductID: product.ID, URL: "second.jpg", SortOrder: 2}).Error)
	require.NoError(t, db.Create(&models.ProductImage{ProductID: product.ID, URL: "first.jpg", SortOrder: 1}).Error)

	found, err := repo.GetBySlug(context.Background(), product.Slug)
	require.NoError(t, err)
	require.Len(t, found.Images, 2)
	assert.Equal(t, "first.jpg", found.Images[0].URL)
	assert.Equal(t, "second.jpg", found.Images[1].URL)
}
