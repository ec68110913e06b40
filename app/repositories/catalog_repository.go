package repositories

import (
	"context"

	"github.com/tiendita/storefront/app/models"
	"gorm.io/gorm"
)

// CatalogRepositoryImpl is the read-side accessor over products, variants
// and images, plus the one catalog write the order engine needs: the
// conditional stock decrement.
type CatalogRepositoryImpl interface {
	GetPaginated(ctx context.Context, limit, offset int) ([]models.Product, int64, error)
	GetByCategorySlugPaginated(ctx context.Context, slug string, limit, offset int) ([]models.Product, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	FindVariant(ctx context.Context, id string) (*models.Variant, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, variantID string, qty int) (bool, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepositoryImpl {
	return &catalogRepository{db}
}

func (p *catalogRepository) GetPaginated(ctx context.Context, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := p.db.WithContext(ctx).
		Preload("Variants").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Category").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (p *catalogRepository) GetByCategorySlugPaginated(ctx context.Context, slug string, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	err := p.db.WithContext(ctx).
		Joins("JOIN categories c ON c.id = products.category_id").
		Where("c.slug = ?", slug).
		Model(&models.Product{}).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = p.db.WithContext(ctx).
		Joins("JOIN categories c ON c.id = products.category_id").
		Where("c.slug = ?", slug).
		Preload("Variants").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Category").
		// The join puts two created_at columns in scope.
		Order("products.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (p *catalogRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Preload("Variants").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Category").
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *catalogRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Preload("Variants").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindVariant loads a variant with its parent product so callers can resolve
// the effective price. Stock reflects the last committed decrement.
func (p *catalogRepository) FindVariant(ctx context.Context, id string) (*models.Variant, error) {
	var variant models.Variant
	if err := p.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Where("id = ?", id).
		First(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// DecrementStock runs the single conditional update
//
//	UPDATE variants SET stock = stock - ? WHERE id = ? AND stock >= ?
//
// so the floor check and the write are one statement evaluated by the
// database. A false return means the variant had less stock than requested
// (or does not exist); nothing was changed.
func (p *catalogRepository) DecrementStock(ctx context.Context, tx *gorm.DB, variantID string, qty int) (bool, error) {
	db := tx
	if db == nil {
		db = p.db
	}

	result := db.WithContext(ctx).
		Model(&models.Variant{}).
		Where("id = ? AND stock >= ?", variantID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
