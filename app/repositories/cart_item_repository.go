package repositories

import (
	"context"
	"time"

	"github.com/tiendita/storefront/app/models"
	"gorm.io/gorm"
)

type CartItemRepository struct {
	DB *gorm.DB
}

type CartItemRepositoryImpl interface {
	Insert(ctx context.Context, item *models.CartItem) error
	IncrementQty(ctx context.Context, cartID, variantID string, qty int) (int64, error)
	UpdateQty(ctx context.Context, itemID string, qty int) error
	GetByID(ctx context.Context, id string) (*models.CartItem, error)
	GetByCartAndVariant(ctx context.Context, cartID, variantID string) (*models.CartItem, error)
	Delete(ctx context.Context, itemID string) (int64, error)
	ClearCartItems(ctx context.Context, tx *gorm.DB, cartID string) error
}

func NewCartItemRepository(db *gorm.DB) CartItemRepositoryImpl {
	return &CartItemRepository{db}
}

func (r *CartItemRepository) Insert(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

// IncrementQty bumps the quantity of the (cart, variant) row with a single
// atomic UPDATE so concurrent adds never read-modify-write a stale copy.
// Zero rows affected means there is no row yet and the caller should insert.
func (r *CartItemRepository) IncrementQty(ctx context.Context, cartID, variantID string, qty int) (int64, error) {
	result := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", qty),
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *CartItemRepository) UpdateQty(ctx context.Context, itemID string, qty int) error {
	return r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"quantity":   qty,
			"updated_at": time.Now(),
		}).Error
}

func (r *CartItemRepository) GetByID(ctx context.Context, id string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartItemRepository) GetByCartAndVariant(ctx context.Context, cartID, variantID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartItemRepository) Delete(ctx context.Context, itemID string) (int64, error) {
	result := r.DB.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

func (r *CartItemRepository) ClearCartItems(ctx context.Context, tx *gorm.DB, cartID string) error {
	db := tx
	if db == nil {
		db = r.DB
	}
	return db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
