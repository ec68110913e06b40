// Package cartmirror is the session-scoped client cache of cart contents.
// It exists so the UI can show cart state without a round trip; it is
// advisory only. Prices held here can go stale, so checkout never reads
// them — handlers rebuild the mirror from the canonical server cart after
// every mutation.
package cartmirror

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/tiendita/storefront/app/models"
)

type Item struct {
	ID          string `json:"id"`
	VariantID   string `json:"variant_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	VariantName string `json:"variant_name"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"image_url"`
}

// Mirror is an explicit state value passed per request, never a package
// singleton. All operations return a new value.
type Mirror struct {
	Items []Item `json:"items"`
}

// Add merges by variant: adding a variant already present increments its
// quantity instead of appending a second entry.
func (m Mirror) Add(item Item) Mirror {
	next := Mirror{Items: make([]Item, len(m.Items))}
	copy(next.Items, m.Items)

	for i := range next.Items {
		if next.Items[i].VariantID == item.VariantID {
			next.Items[i].Quantity += item.Quantity
			return next
		}
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	next.Items = append(next.Items, item)
	return next
}

// UpdateQuantity sets an entry's quantity; zero or less removes it.
func (m Mirror) UpdateQuantity(id string, quantity int) Mirror {
	if quantity <= 0 {
		return m.Remove(id)
	}

	next := Mirror{Items: make([]Item, len(m.Items))}
	copy(next.Items, m.Items)
	for i := range next.Items {
		if next.Items[i].ID == id {
			next.Items[i].Quantity = quantity
		}
	}
	return next
}

func (m Mirror) Remove(id string) Mirror {
	next := Mirror{}
	for _, item := range m.Items {
		if item.ID != id {
			next.Items = append(next.Items, item)
		}
	}
	return next
}

// Subtotal sums cached prices for display. Authoritative totals always come
// from the cart service.
func (m Mirror) Subtotal() int64 {
	var total int64
	for _, item := range m.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// Count is the total quantity across entries, the number shown on the cart
// badge.
func (m Mirror) Count() int {
	var count int
	for _, item := range m.Items {
		count += item.Quantity
	}
	return count
}

// FromCart rebuilds the mirror from the canonical server cart. The cart must
// come from the cart service read path so item display prices are populated.
func FromCart(cart *models.Cart) Mirror {
	mirror := Mirror{}
	if cart == nil {
		return mirror
	}
	for _, item := range cart.CartItems {
		entry := Item{
			ID:        item.ID,
			VariantID: item.VariantID,
			Price:     item.UnitPrice,
			Quantity:  item.Quantity,
		}
		if item.Variant != nil {
			entry.VariantName = item.Variant.Name
			entry.ProductID = item.Variant.ProductID
			if item.Variant.Product != nil {
				entry.ProductName = item.Variant.Product.Name
				if len(item.Variant.Product.Images) > 0 {
					entry.ImageURL = item.Variant.Product.Images[0].URL
				}
			}
		}
		mirror.Items = append(mirror.Items, entry)
	}
	return mirror
}

func (m Mirror) Encode() (string, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Decode parses a serialized mirror; garbage yields an empty mirror rather
// than an error since the cache is disposable.
func Decode(encoded string) Mirror {
	var mirror Mirror
	if encoded == "" {
		return mirror
	}
	if err := json.Unmarshal([]byte(encoded), &mirror); err != nil {
		return Mirror{}
	}
	return mirror
}
