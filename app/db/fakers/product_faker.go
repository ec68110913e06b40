package fakers

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/tiendita/storefront/app/models"
)

var variantNames = []string{"Negro / S", "Negro / M", "Blanco / S", "Blanco / M", "Natural", "Rojo"}

func ProductFaker(category *models.Category) *models.Product {
	name := faker.Word() + " " + faker.Word()
	productID := uuid.New().String()
	basePrice := fakePrice()

	numVariants := rand.Intn(3) + 1
	variants := make([]models.Variant, numVariants)
	for i := 0; i < numVariants; i++ {
		variantName := variantNames[rand.Intn(len(variantNames))]
		variants[i] = models.Variant{
			ProductID: productID,
			Sku:       skuPrefix(name) + "-" + uuid.NewString()[:8],
			Name:      variantName,
			Stock:     rand.Intn(50) + 1,
		}
		// Roughly half the variants carry their own price override.
		if rand.Intn(2) == 0 {
			override := basePrice + int64(rand.Intn(500))
			variants[i].Price = &override
		}
	}

	numImages := rand.Intn(3) + 1
	images := make([]models.ProductImage, numImages)
	for i := 0; i < numImages; i++ {
		images[i] = models.ProductImage{
			ProductID: productID,
			URL:       fmt.Sprintf("https://images.unsplash.com/photo-%d?w=500", rand.Intn(1_000_000_000)),
			Alt:       name,
			SortOrder: i + 1,
		}
	}

	product := &models.Product{
		ID:          productID,
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Paragraph(),
		Price:       basePrice,
		Variants:    variants,
		Images:      images,
	}
	if category != nil {
		product.CategoryID = &category.ID
	}

	return product
}

// fakePrice returns a price between $5.00 and $155.00 in cents.
func fakePrice() int64 {
	return int64(rand.Intn(15000) + 500)
}

// skuPrefix derives the readable SKU prefix from a product name. Names whose
// slug comes out shorter than three characters are padded.
func skuPrefix(name string) string {
	prefix := strings.ToUpper(slug.Make(name))
	for len(prefix) < 3 {
		prefix += "X"
	}
	return prefix[:3]
}
