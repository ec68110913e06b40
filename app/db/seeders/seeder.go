package seeders

import (
	"log"

	"github.com/tiendita/storefront/app/db/fakers"
	"github.com/tiendita/storefront/app/models"
	"gorm.io/gorm"
)

const productsPerCategory = 6

func DBSeed(db *gorm.DB) error {
	admin := fakers.AdminFaker()
	if err := db.FirstOrCreate(admin, "email = ?", admin.Email).Error; err != nil {
		return err
	}

	categories := []models.Category{
		{Name: "Ropa", Slug: "ropa", Description: "Colección de ropa"},
		{Name: "Accesorios", Slug: "accesorios", Description: "Bolsos, cinturones, etc."},
	}

	for i := range categories {
		category := &categories[i]
		if err := db.FirstOrCreate(category, "slug = ?", category.Slug).Error; err != nil {
			return err
		}

		for j := 0; j < productsPerCategory; j++ {
			product := fakers.ProductFaker(category)
			if err := db.Create(product).Error; err != nil {
				return err
			}
		}
		log.Printf("Seeded %d products into category %s", productsPerCategory, category.Slug)
	}

	return nil
}
