package model

import (
	"github.com/shopspring/decimal"

	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// HijriKey encodes a Hijri date as yyyymmdd so that ordered comparisons
// work in SQL.
func HijriKey(d valueobject.HijriDate) int {
	return d.Year()*10000 + d.Month()*100 + d.Day()
}

// HijriFromKey decodes a value produced by HijriKey.
func HijriFromKey(key int) (valueobject.HijriDate, error) {
	return valueobject.NewHijriDate(key/10000, key/100%100, key%100)
}

func money(amount decimal.Decimal, currency string) (valueobject.Money, error) {
	return valueobject.NewMoney(amount, currency)
}

func optionalMoney(amount *decimal.Decimal, currency string) (valueobject.Money, error) {
	if amount == nil {
		return valueobject.Money{}, nil
	}
	return money(*amount, currency)
}

func amountPtr(m valueobject.Money) *decimal.Decimal {
	if m.Currency().IsZero() {
		return nil
	}
	a := m.Amount()
	return &a
}
