// Package money holds the currency table and the commission arithmetic for
// transfers. All functions are pure; amounts use shopspring decimals and are
// rounded to the currency precision.
package money

import (
	"github.com/shopspring/decimal"

	"tramex/internal/models"
)

// Currency describes a supported settlement currency.
type Currency struct {
	Code      string
	Symbol    string
	Precision int32
}

// Currencies is the set of currencies accepted at the counter.
var Currencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", Precision: 2},
	"EUR": {Code: "EUR", Symbol: "€", Precision: 2},
	"AED": {Code: "AED", Symbol: "د.إ", Precision: 2},
	"CDF": {Code: "CDF", Symbol: "FC", Precision: 2},
}

// Supported reports whether code is an accepted currency.
func Supported(code string) bool {
	_, ok := Currencies[code]
	return ok
}

// Precision returns the decimal places for a currency code, defaulting to 2
// for unknown codes.
func Precision(code string) int32 {
	if c, ok := Currencies[code]; ok {
		return c.Precision
	}
	return 2
}

var (
	defaultCommissionKinDxb = decimal.NewFromFloat(3.5)
	defaultCommissionDxbKin = decimal.NewFromFloat(3.0)
	hundred                 = decimal.NewFromInt(100)
)

// DefaultCommissionPercentage returns the corridor's default commission
// percentage. It is a pre-filled suggestion for the creation form, never
// force-applied to a transfer.
func DefaultCommissionPercentage(direction models.Direction) decimal.Decimal {
	if direction == models.DirectionDubaiToKinshasa {
		return defaultCommissionDxbKin
	}
	return defaultCommissionKinDxb
}

// Commission computes amount * percentage / 100 rounded to the currency
// precision.
func Commission(amount, percentage decimal.Decimal, currency string) decimal.Decimal {
	return amount.Mul(percentage).Div(hundred).Round(Precision(currency))
}

// Total computes the amount the sender pays: principal plus commission.
func Total(amount, commission decimal.Decimal) decimal.Decimal {
	return amount.Add(commission)
}
