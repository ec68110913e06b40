package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductImage struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string `gorm:"size:36;not null;index" json:"product_id"`
	URL       string `gorm:"size:512;not null" json:"url"`
	Alt       string `gorm:"size:255" json:"alt"`
	// SortOrder orders a product's gallery; ties fall back to insertion order.
	SortOrder int `gorm:"not null;default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (pi *ProductImage) BeforeCreate(tx *gorm.DB) (err error) {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return
}
