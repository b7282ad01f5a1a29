package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currencies charged in whole units, with no minor unit.
var zeroDecimalCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
	"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// MajorUnits converts a minor-unit amount (cents) into its major-unit decimal value.
func MajorUnits(amount int64, currency string) decimal.Decimal {
	if zeroDecimalCurrencies[strings.ToLower(currency)] {
		return decimal.NewFromInt(amount)
	}
	return decimal.New(amount, -2)
}

// FormatAmount renders an amount for display, e.g. "12.50 USD".
func FormatAmount(amount int64, currency string) string {
	c := strings.ToLower(currency)
	if c == "" {
		c = DefaultCurrency
	}
	places := int32(2)
	if zeroDecimalCurrencies[c] {
		places = 0
	}
	return MajorUnits(amount, c).StringFixed(places) + " " + strings.ToUpper(c)
}
