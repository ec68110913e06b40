package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendita/storefront/app/db/testdb"
	"github.com/tiendita/storefront/app/models"
	"gorm.io/gorm"
)

func TestIncrementQty(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCartItemRepository(db)
	ctx := context.Background()

	cart := &models.Cart{SessionID: "session-1"}
	require.NoError(t, db.Create(cart).Error)

	// No row yet: the increment must touch nothing.
	rows, err := repo.IncrementQty(ctx, cart.ID, "v1", 2)
	require.NoError(t, err)
	assert.Zero(t, rows)

	require.NoError(t, repo.Insert(ctx, &models.CartItem{CartID: cart.ID, VariantID: "v1", Quantity: 2}))

	rows, err = repo.IncrementQty(ctx, cart.ID, "v1", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	item, err := repo.GetByCartAndVariant(ctx, cart.ID, "v1")
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
}

func TestCartItemUniquePerCartAndVariant(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCartItemRepository(db)
	ctx := context.Background()

	cart := &models.Cart{SessionID: "session-1"}
	require.NoError(t, db.Create(cart).Error)

	require.NoError(t, repo.Insert(ctx, &models.CartItem{CartID: cart.ID, VariantID: "v1", Quantity: 1}))
	err := repo.Insert(ctx, &models.CartItem{CartID: cart.ID, VariantID: "v1", Quantity: 1})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	// Same variant in a different cart is fine.
	other := &models.Cart{SessionID: "session-2"}
	require.NoError(t, db.Create(other).Error)
	require.NoError(t, repo.Insert(ctx, &models.CartItem{CartID: other.ID, VariantID: "v1", Quantity: 1}))
}

func TestCartSessionIDUnique(t *testing.T) {
	db := testdb.Open(t)

	require.NoError(t, db.Create(&models.Cart{SessionID: "session-1"}).Error)
	err := db.Create(&models.Cart{SessionID: "session-1"}).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestDeleteIsIdempotent(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCartItemRepository(db)
	ctx := context.Background()

	cart := &models.Cart{SessionID: "session-1"}
	require.NoError(t, db.Create(cart).Error)

	item := &models.CartItem{CartID: cart.ID, VariantID: "v1", Quantity: 1}
	require.NoError(t, repo.Insert(ctx, item))

	rows, err := repo.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestClearCartItems(t *testing.T) {
	db := testdb.Open(t)
	repo := NewCartItemRepository(db)
	ctx := context.Background()

	cart := &models.Cart{SessionID: "session-1"}
	require.NoError(t, db.Create(cart).Error)
	require.NoError(t, repo.Insert(ctx, &models.CartItem{CartID: cart.ID, VariantID: "v1", Quantity: 1}))
	require.NoError(t, repo.Insert(ctx, &models.CartItem{CartID: cart.ID, VariantID: "v2", Quantity: 2}))

	require.NoError(t, repo.ClearCartItems(ctx, nil, cart.ID))

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
	assert.Zero(t, count)

	// The cart row itself survives empty.
	var reloaded models.Cart
	require.NoError(t, db.First(&reloaded, "id = ?", cart.ID).Error)
}
