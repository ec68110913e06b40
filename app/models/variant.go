package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Variant is the purchasable SKU under a product. Price, when non-nil,
// overrides the product price; stock is kept non-negative by the conditional
// decrement in the catalog repository.
type Variant struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string `gorm:"size:36;not null;index" json:"product_id"`
	Sku       string `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Price     *int64 `json:"price,omitempty"`
	Stock     int    `gorm:"not null;default:0" json:"stock"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Variant) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}

// EffectivePrice returns the variant price override when set, otherwise the
// parent product price. The Product association must be loaded.
func (v *Variant) EffectivePrice() int64 {
	if v.Price != nil {
		return *v.Price
	}
	if v.Product != nil {
		return v.Product.Price
	}
	return 0
}
