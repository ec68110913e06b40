package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem references a variant, it does not copy it. The composite unique
// index on (cart_id, variant_id) guarantees at most one row per variant in a
// cart; repeated adds increment Quantity in place.
type CartItem struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CartID    string `gorm:"size:36;not null;uniqueIndex:idx_cart_variant,priority:1" json:"cart_id"`
	VariantID string `gorm:"size:36;not null;uniqueIndex:idx_cart_variant,priority:2" json:"variant_id"`
	Quantity  int    `gorm:"not null" json:"quantity"`

	Cart    *Cart    `gorm:"foreignKey:CartID" json:"-"`
	Variant *Variant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`

	// Display-only figures filled in by the cart service from live catalog
	// data; never persisted.
	UnitPrice int64 `gorm:"-" json:"unit_price"`
	Subtotal  int64 `gorm:"-" json:"subtotal"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}
