package services

import (
	"strings"

	"torget-app-io/api/pkg/models"

	"github.com/shopspring/decimal"
)

// Tax rates by ISO 3166-1 alpha-2 country code. Unknown codes fall back to
// DefaultTaxRate.
var taxRates = map[string]float64{
	"SE": 0.25,
	"NO": 0.25,
	"DK": 0.25,
	"FI": 0.24,
	"DE": 0.19,
	"GB": 0.20,
}

const (
	DefaultTaxRate        = 0.25
	FreeShippingThreshold = 500.0
	FlatShippingFee       = 49.0
)

// CalculateTax returns subtotal times the country's rate, rounded to two
// decimal places.
func CalculateTax(subtotal float64, countryCode string) float64 {
	rate, ok := taxRates[strings.ToUpper(countryCode)]
	if !ok {
		rate = DefaultTaxRate
	}

	tax := decimal.NewFromFloat(subtotal).Mul(decimal.NewFromFloat(rate))
	return tax.Round(2).InexactFloat64()
}

// CalculateShipping is zero at or above the free-shipping threshold, else the
// flat fee.
func CalculateShipping(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// CalculatePricing computes the order totals for a subtotal and destination
// country. It is deterministic and holds no state; callers invoke it fresh
// whenever subtotal or country changes.
func CalculatePricing(subtotal float64, countryCode string) models.OrderPricing {
	sub := decimal.NewFromFloat(subtotal).Round(2)
	tax := decimal.NewFromFloat(CalculateTax(subtotal, countryCode))
	shipping := decimal.NewFromFloat(CalculateShipping(subtotal))
	total := sub.Add(tax).Add(shipping)

	return models.OrderPricing{
		Subtotal:       sub.InexactFloat64(),
		TaxAmount:      tax.InexactFloat64(),
		ShippingAmount: shipping.InexactFloat64(),
		TotalAmount:    total.Round(2).InexactFloat64(),
	}
}
