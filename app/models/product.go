package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog entry. Purchasable units are its Variants; Price is
// the fallback when a variant carries no override. All monetary values in
// this package are integer minor units (cents).
type Product struct {
	ID          string  `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Slug        string  `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	Price       int64   `gorm:"not null" json:"price"`
	CategoryID  *string `gorm:"size:36;index" json:"category_id,omitempty"`

	Category *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variants []Variant      `json:"variants,omitempty"`
	Images   []ProductImage `json:"images,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
