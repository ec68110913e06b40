package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem freezes a cart line at checkout. Price is the effective price at
// order-creation time; product/variant names and SKU are denormalized so the
// order survives catalog edits.
type OrderItem struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID     string `gorm:"size:36;not null;index" json:"order_id"`
	VariantID   string `gorm:"size:36;not null;index" json:"variant_id"`
	ProductName string `gorm:"size:255;not null" json:"product_name"`
	VariantName string `gorm:"size:255;not null" json:"variant_name"`
	Sku         string `gorm:"size:100" json:"sku"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	Price       int64  `gorm:"not null" json:"price"`

	Order   *Order   `gorm:"foreignKey:OrderID" json:"-"`
	Variant *Variant `gorm:"foreignKey:VariantID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

// LineTotal is the frozen price times quantity.
func (oi *OrderItem) LineTotal() int64 {
	return oi.Price * int64(oi.Quantity)
}
