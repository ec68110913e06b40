package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidOrderTransition(t *testing.T) {
	tests := []struct {
		name string
		from int
		to   int
		want bool
	}{
		{"pending to paid", OrderStatusPending, OrderStatusPaid, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"paid to shipped", OrderStatusPaid, OrderStatusShipped, true},
		{"paid to cancelled", OrderStatusPaid, OrderStatusCancelled, true},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},

		{"pending to shipped skips paid", OrderStatusPending, OrderStatusShipped, false},
		{"paid back to pending", OrderStatusPaid, OrderStatusPending, false},
		{"shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPaid, false},
		{"delivered cannot regress", OrderStatusDelivered, OrderStatusShipped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidOrderTransition(tt.from, tt.to))
		})
	}
}

func TestOrderStatusLabels(t *testing.T) {
	assert.Equal(t, "PENDING", OrderStatusLabel(OrderStatusPending))
	assert.Equal(t, "CANCELLED", OrderStatusLabel(OrderStatusCancelled))
	assert.Equal(t, "UNKNOWN", OrderStatusLabel(99))

	status, ok := ParseOrderStatus("SHIPPED")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusShipped, status)

	_, ok = ParseOrderStatus("REFUNDED")
	assert.False(t, ok)
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{Price: 2999, Quantity: 2}
	assert.Equal(t, int64(5998), item.LineTotal())
}

func TestVariantEffectivePrice(t *testing.T) {
	product := &Product{Price: 2999}

	override := int64(3499)
	withOverride := Variant{Price: &override, Product: product}
	assert.Equal(t, int64(3499), withOverride.EffectivePrice())

	inherits := Variant{Product: product}
	assert.Equal(t, int64(2999), inherits.EffectivePrice())
}
