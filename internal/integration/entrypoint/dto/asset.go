package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zakat-calculator/backend/internal/domain/entity"
)

// StockRequest carries stock details.
type StockRequest struct {
	Symbol        string           `json:"symbol" binding:"required"`
	Shares        decimal.Decimal  `json:"shares"`
	PricePerShare *decimal.Decimal `json:"price_per_share"`
}

// MetalRequest carries precious metal details.
type MetalRequest struct {
	Weight       decimal.Decimal  `json:"weight"`
	Unit         string           `json:"unit"`
	Karat        int              `json:"karat"`
	SilverPurity decimal.Decimal  `json:"silver_purity"`
	PricePerGram *decimal.Decimal `json:"price_per_gram"`
}

// PropertyRequest carries real estate details.
type PropertyRequest struct {
	Address           string          `json:"address" binding:"required"`
	Appraisal         decimal.Decimal `json:"appraisal"`
	LastValuationDate time.Time       `json:"last_valuation_date"`
}

// CreateAssetRequest represents POST /assets. Exactly one detail block
// matches the kind; money assets carry none.
type CreateAssetRequest struct {
	Kind            string           `json:"kind"`
	Type            string           `json:"type" binding:"required"`
	Currency        string           `json:"currency"`
	Value           decimal.Decimal  `json:"value"`
	AcquisitionDate string           `json:"acquisition_date"`
	Description     string           `json:"description"`
	Stock           *StockRequest    `json:"stock"`
	Metal           *MetalRequest    `json:"metal"`
	Property        *PropertyRequest `json:"property"`
}

// UpdateAssetValueRequest represents PATCH /assets/:id/value.
type UpdateAssetValueRequest struct {
	Value          *decimal.Decimal `json:"value"`
	Shares         *decimal.Decimal `json:"shares"`
	PricePerShare  *decimal.Decimal `json:"price_per_share"`
	PricePerGram   *decimal.Decimal `json:"price_per_gram"`
	UseMarketPrice bool             `json:"use_market_price"`
	ValuedAt       *time.Time       `json:"valued_at"`
}

// MarkZakatPaidRequest represents POST /assets/:id/zakat-payments.
// HijriYear defaults to the current year and Amount to 2.5% of the value.
type MarkZakatPaidRequest struct {
	HijriYear int              `json:"hijri_year"`
	Amount    *decimal.Decimal `json:"amount"`
	PaidDate  *time.Time       `json:"paid_date"`
}

// ZakatPaymentResponse is one recorded payment.
type ZakatPaymentResponse struct {
	HijriYear int           `json:"hijri_year"`
	PaidDate  time.Time     `json:"paid_date"`
	Amount    MoneyResponse `json:"amount"`
}

// StockResponse mirrors entity.StockDetails.
type StockResponse struct {
	Symbol        string        `json:"symbol"`
	Shares        string        `json:"shares"`
	PricePerShare MoneyResponse `json:"price_per_share"`
}

// MetalResponse mirrors entity.MetalDetails.
type MetalResponse struct {
	Weight       string        `json:"weight"`
	Unit         string        `json:"unit"`
	Karat        int           `json:"karat,omitempty"`
	SilverPurity string        `json:"silver_purity,omitempty"`
	PricePerGram MoneyResponse `json:"price_per_gram"`
}

// PropertyResponse mirrors entity.PropertyDetails.
type PropertyResponse struct {
	Address           string        `json:"address"`
	Appraisal         MoneyResponse `json:"appraisal"`
	LastValuationDate time.Time     `json:"last_valuation_date"`
}

// AssetResponse represents an asset in API responses.
type AssetResponse struct {
	ID                 string                 `json:"id"`
	Kind               string                 `json:"kind"`
	Type               string                 `json:"type"`
	Value              MoneyResponse          `json:"value"`
	AcquisitionDate    HijriDateResponse      `json:"acquisition_date"`
	HawlCompletionDate HijriDateResponse      `json:"hawl_completion_date"`
	Description        string                 `json:"description,omitempty"`
	Payments           []ZakatPaymentResponse `json:"zakat_payments"`
	Stock              *StockResponse         `json:"stock,omitempty"`
	Metal              *MetalResponse         `json:"metal,omitempty"`
	Property           *PropertyResponse      `json:"property,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	LastUpdated        time.Time              `json:"last_updated"`
}

// ToAssetResponse converts a domain Asset entity to an AssetResponse DTO.
func ToAssetResponse(a *entity.Asset) AssetResponse {
	resp := AssetResponse{
		ID:                 a.ID.String(),
		Kind:               string(a.Kind),
		Type:               string(a.Type),
		Value:              ToMoneyResponse(a.CurrentValue()),
		AcquisitionDate:    ToHijriDateResponse(a.AcquisitionDate),
		HawlCompletionDate: ToHijriDateResponse(a.HawlCompletionDate()),
		Description:        a.Description,
		Payments:           make([]ZakatPaymentResponse, 0),
		CreatedAt:          a.CreatedAt,
		LastUpdated:        a.LastUpdated(),
	}
	for _, p := range a.ZakatPaymentHistory() {
		resp.Payments = append(resp.Payments, ZakatPaymentResponse{
			HijriYear: p.HijriYear,
			PaidDate:  p.PaidDate,
			Amount:    ToMoneyResponse(p.Amount),
		})
	}
	if s := a.Stock(); s != nil {
		resp.Stock = &StockResponse{
			Symbol:        s.Symbol,
			Shares:        s.Shares.String(),
			PricePerShare: ToMoneyResponse(s.PricePerShare),
		}
	}
	if m := a.Metal(); m != nil {
		resp.Metal = &MetalResponse{
			Weight:       m.Weight.String(),
			Unit:         string(m.Unit),
			Karat:        m.Karat,
			PricePerGram: ToMoneyResponse(m.PricePerGram),
		}
		if !m.SilverPurity.IsZero() {
			resp.Metal.SilverPurity = m.SilverPurity.String()
		}
	}
	if p := a.Property(); p != nil {
		resp.Property = &PropertyResponse{
			Address:           p.Address,
			Appraisal:         ToMoneyResponse(p.Appraisal),
			LastValuationDate: p.LastValuationDate,
		}
	}
	return resp
}

// ToAssetResponses converts a slice of assets.
func ToAssetResponses(assets []*entity.Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, ToAssetResponse(a))
	}
	return out
}
