package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = 1
	OrderStatusPaid      = 2
	OrderStatusShipped   = 3
	OrderStatusDelivered = 4
	OrderStatusCancelled = 5
)

var orderStatusLabels = map[int]string{
	OrderStatusPending:   "PENDING",
	OrderStatusPaid:      "PAID",
	OrderStatusShipped:   "SHIPPED",
	OrderStatusDelivered: "DELIVERED",
	OrderStatusCancelled: "CANCELLED",
}

// OrderStatusLabel returns the display name for a status, or "UNKNOWN".
func OrderStatusLabel(status int) string {
	if label, ok := orderStatusLabels[status]; ok {
		return label
	}
	return "UNKNOWN"
}

// ParseOrderStatus maps a display name back to its status code.
func ParseOrderStatus(label string) (int, bool) {
	for status, l := range orderStatusLabels {
		if l == label {
			return status, true
		}
	}
	return 0, false
}

// ValidOrderTransition reports whether an order may move from one status to
// the next: PENDING → PAID → SHIPPED → DELIVERED forward-only, with
// CANCELLED reachable from PENDING and PAID. DELIVERED and CANCELLED are
// terminal.
func ValidOrderTransition(from, to int) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusPaid || to == OrderStatusCancelled
	case OrderStatusPaid:
		return to == OrderStatusShipped || to == OrderStatusCancelled
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	default:
		return false
	}
}

// Order is an immutable record of a checked-out cart. Total and the item
// prices are frozen at creation time; later variant price changes never
// touch them. UserID is empty for guest checkouts.
type Order struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderCode string    `gorm:"size:100;not null;uniqueIndex" json:"order_code"`
	UserID    *string   `gorm:"size:36;index" json:"user_id,omitempty"`
	OrderDate time.Time `gorm:"not null" json:"order_date"`

	OrderItems []OrderItem `json:"items"`

	Subtotal   int64 `gorm:"not null" json:"subtotal"`
	TaxAmount  int64 `gorm:"not null" json:"tax_amount"`
	GrandTotal int64 `gorm:"not null" json:"grand_total"`

	Status int `gorm:"not null;default:1" json:"status"`

	User *User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

func (o *Order) StatusLabel() string {
	return OrderStatusLabel(o.Status)
}
