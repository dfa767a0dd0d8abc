package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
)

var hundred = decimal.NewFromInt(100)

// Money is an immutable, non-negative amount tagged with a currency.
// Every operation returns a new value.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates Money after validating the amount and currency code.
func NewMoney(amount decimal.Decimal, currencyCode string) (Money, error) {
	currency, err := ParseCurrency(currencyCode)
	if err != nil {
		return Money{}, err
	}
	return newMoney(amount, currency)
}

// NewMoneyFromFloat is NewMoney for float inputs coming from JSON.
func NewMoneyFromFloat(amount float64, currencyCode string) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount), currencyCode)
}

// NewMoneyIn creates Money in an already validated currency.
func NewMoneyIn(amount decimal.Decimal, currency Currency) (Money, error) {
	return newMoney(amount, currency)
}

// Zero returns the additive identity for a currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// ParseMoney parses the "USD 100.00" form produced by String.
func ParseMoney(value string) (Money, error) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return Money{}, domainerror.NewZakatError(
			domainerror.ErrCodeInvalidMoneyFormat,
			"cannot parse money "+value,
			domainerror.ErrInvalidMoneyFormat,
		)
	}
	amount, err := decimal.NewFromString(parts[1])
	if err != nil {
		return Money{}, domainerror.NewZakatError(
			domainerror.ErrCodeInvalidMoneyFormat,
			"cannot parse money "+value,
			domainerror.ErrInvalidMoneyFormat,
		)
	}
	return NewMoney(amount, parts[0])
}

func newMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, domainerror.NewZakatError(
			domainerror.ErrCodeNegativeAmount,
			"amount cannot be negative",
			domainerror.ErrNegativeAmount,
		)
	}
	return Money{amount: amount, currency: currency}, nil
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency.
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns m - other. A negative result is rejected.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, domainerror.NewZakatError(
			domainerror.ErrCodeNegativeResult,
			fmt.Sprintf("cannot subtract %s from %s", other, m),
			domainerror.ErrNegativeResult,
		)
	}
	return Money{amount: result, currency: m.currency}, nil
}

// Multiply scales the amount by a non-negative factor.
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, domainerror.NewZakatError(
			domainerror.ErrCodeNegativeAmount,
			"factor cannot be negative",
			domainerror.ErrNegativeFactor,
		)
	}
	return Money{amount: m.amount.Mul(factor), currency: m.currency}, nil
}

// Percentage returns percent% of m. percent must lie in [0, 100].
func (m Money) Percentage(percent decimal.Decimal) (Money, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return Money{}, domainerror.NewZakatError(
			domainerror.ErrCodeInvalidPercentage,
			"percentage must be between 0 and 100",
			domainerror.ErrInvalidPercentage,
		)
	}
	return Money{amount: m.amount.Mul(percent).Div(hundred), currency: m.currency}, nil
}

// IsGreaterThan reports whether m > other.
func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// IsGreaterThanOrEqual reports whether m >= other.
func (m Money) IsGreaterThanOrEqual(other Money) (bool, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// IsLessThan reports whether m < other.
func (m Money) IsLessThan(other Money) (bool, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// Equals reports whether both amount and currency match.
// Unlike the ordered comparisons it never fails.
func (m Money) Equals(other Money) bool {
	return m.currency.Equals(other.currency) && m.amount.Equal(other.amount)
}

// String renders "USD 100.00".
func (m Money) String() string {
	return m.currency.Code() + " " + m.amount.StringFixed(2)
}

func (m Money) ensureSameCurrency(other Money) error {
	if !m.currency.Equals(other.currency) {
		return domainerror.NewZakatError(
			domainerror.ErrCodeCurrencyMismatch,
			fmt.Sprintf("currency mismatch: %s vs %s", m.currency, other.currency),
			domainerror.ErrCurrencyMismatch,
		)
	}
	return nil
}
