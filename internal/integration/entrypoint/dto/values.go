package dto

import (
	"encoding/json"

	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// MoneyResponse is an amount with its currency. The amount is a JSON number
// carrying the full decimal value, never rounded.
type MoneyResponse struct {
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
}

// ToMoneyResponse converts a Money value.
func ToMoneyResponse(m valueobject.Money) MoneyResponse {
	return MoneyResponse{Amount: json.Number(m.Amount().String()), Currency: m.Currency().Code()}
}

// HijriDateResponse is a Hijri calendar date.
type HijriDateResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// ToHijriDateResponse converts a HijriDate value.
func ToHijriDateResponse(d valueobject.HijriDate) HijriDateResponse {
	return HijriDateResponse{Year: d.Year(), Month: d.Month(), Day: d.Day()}
}
