package calc

import (
	"github.com/shopspring/decimal"
	"github.com/tiendita/storefront/app/configs"
	"github.com/tiendita/storefront/app/utils/money"
)

// GetTaxPercent reads the flat tax percentage from TAX_PERCENT. Anything
// unset or unparseable means no tax.
func GetTaxPercent() decimal.Decimal {
	raw := configs.LoadENV.TaxPercent
	if raw == "" {
		return decimal.Zero
	}
	percent, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return percent
}

// CalculateTax applies the flat tax percentage to a subtotal in cents.
func CalculateTax(subtotal int64) int64 {
	return money.Percent(subtotal, GetTaxPercent())
}
