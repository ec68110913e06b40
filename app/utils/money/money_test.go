package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "$29.99", Format(2999))
	assert.Equal(t, "$209.97", Format(20997))
	assert.Equal(t, "$0.05", Format(5))
	assert.Equal(t, "$1,499.00", Format(149900))
}

func TestFromCents(t *testing.T) {
	assert.True(t, FromCents(2999).Equal(decimal.RequireFromString("29.99")))
	assert.True(t, FromCents(0).Equal(decimal.Zero))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, int64(0), Percent(20997, decimal.Zero))
	assert.Equal(t, int64(2100), Percent(21000, decimal.NewFromInt(10)))
	// 2999 * 8.25% = 247.4175 → rounds to 247 cents
	assert.Equal(t, int64(247), Percent(2999, decimal.RequireFromString("8.25")))
}
