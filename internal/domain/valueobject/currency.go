// Package valueobject contains domain value objects for the Zakat Calculator system.
package valueobject

import (
	"strings"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
)

// Currency is an ISO 4217 code from the supported set.
type Currency struct {
	code string
}

var supportedCurrencies = []string{
	"USD", "EUR", "GBP", "SAR", "AED", "EGP", "TRY",
	"MYR", "IDR", "PKR", "BDT", "INR", "CAD", "AUD",
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"SAR": "ر.س",
	"AED": "د.إ",
	"EGP": "ج.م",
	"TRY": "₺",
	"MYR": "RM",
	"IDR": "Rp",
	"PKR": "₨",
	"BDT": "৳",
	"INR": "₹",
	"CAD": "C$",
	"AUD": "A$",
}

// Common currencies.
var (
	USD = Currency{code: "USD"}
	EUR = Currency{code: "EUR"}
	SAR = Currency{code: "SAR"}
	AED = Currency{code: "AED"}
)

// ParseCurrency validates a currency code. Codes are case-insensitive.
func ParseCurrency(code string) (Currency, error) {
	upper := strings.ToUpper(strings.TrimSpace(code))
	for _, c := range supportedCurrencies {
		if c == upper {
			return Currency{code: upper}, nil
		}
	}
	return Currency{}, domainerror.NewZakatError(
		domainerror.ErrCodeUnsupportedCurrency,
		"unsupported currency "+code,
		domainerror.ErrUnsupportedCurrency,
	)
}

// AllCurrencies returns every supported currency.
func AllCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	for i, c := range supportedCurrencies {
		out[i] = Currency{code: c}
	}
	return out
}

// Code returns the ISO code.
func (c Currency) Code() string {
	return c.code
}

// Symbol returns the display symbol, falling back to the code.
func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c.code]; ok {
		return s
	}
	return c.code
}

// IsMajor reports whether the currency is USD, EUR or GBP.
func (c Currency) IsMajor() bool {
	switch c.code {
	case "USD", "EUR", "GBP":
		return true
	}
	return false
}

// IsIslamic reports whether the currency belongs to a majority-Muslim country.
func (c Currency) IsIslamic() bool {
	switch c.code {
	case "SAR", "AED", "EGP", "TRY", "MYR", "IDR", "PKR", "BDT":
		return true
	}
	return false
}

// IsZero reports whether the currency was never set.
func (c Currency) IsZero() bool {
	return c.code == ""
}

// Equals compares two currencies.
func (c Currency) Equals(other Currency) bool {
	return c.code == other.code
}

func (c Currency) String() string {
	return c.code
}
