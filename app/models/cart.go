package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart holds the items of exactly one shopper session. The unique index on
// SessionID is what keeps concurrent lazy creation from producing two rows.
// Totals are derived from catalog prices at read time and never persisted.
type Cart struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	SessionID string `gorm:"size:36;not null;uniqueIndex" json:"session_id"`

	CartItems []CartItem `json:"items"`

	Subtotal   int64 `gorm:"-" json:"subtotal"`
	TaxAmount  int64 `gorm:"-" json:"tax_amount"`
	GrandTotal int64 `gorm:"-" json:"grand_total"`
	TotalItems int   `gorm:"-" json:"total_items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
