package repositories

import (
	"context"
	"errors"

	"github.com/tiendita/storefront/app/models"
	"gorm.io/gorm"
)

type CartRepositoryImpl interface {
	GetBySessionID(ctx context.Context, sessionID string) (*models.Cart, error)
	GetWithItems(ctx context.Context, cartID string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	GetItemCount(ctx context.Context, cartID string) (int, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepositoryImpl {
	return &cartRepository{db}
}

// GetBySessionID returns (nil, nil) when the session has no cart yet; a cart
// is only ever created lazily by the first add.
func (r *cartRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetWithItems is the canonical cart read: one shape, items with their
// variant and product snapshots, used by every consumer.
func (r *cartRepository) GetWithItems(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("CartItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("CartItems.Variant").
		Preload("CartItems.Variant.Product").
		Preload("CartItems.Variant.Product.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Where("id = ?", cartID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create inserts a cart row. The unique index on session_id makes a
// concurrent duplicate surface as gorm.ErrDuplicatedKey, which callers
// resolve by re-reading.
func (r *cartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *cartRepository) GetItemCount(ctx context.Context, cartID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ?", cartID).
		Count(&count).Error

	return int(count), err
}
