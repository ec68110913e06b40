// Package money fixes the repository-wide monetary representation: every
// amount is an int64 number of minor units (cents). Decimal values only
// appear at the formatting and percentage boundary, never in storage.
package money

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = accounting.Accounting{Symbol: "$", Precision: 2}

// FromCents converts cents into a decimal amount of whole currency units.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Format renders cents for display, e.g. 20997 → "$209.97".
func Format(cents int64) string {
	return usd.FormatMoneyDecimal(FromCents(cents))
}

// Percent applies a percentage to an amount of cents and rounds half-up back
// to cents.
func Percent(cents int64, percent decimal.Decimal) int64 {
	return decimal.New(cents, 0).
		Mul(percent).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
