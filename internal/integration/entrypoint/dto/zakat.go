package dto

import (
	"sort"
	"time"

	"github.com/zakat-calculator/backend/internal/application/usecase/zakat"
)

// CalculateZakatRequest represents POST /zakat/calculate. An empty list
// calculates over every asset.
type CalculateZakatRequest struct {
	AssetIDs []string `json:"asset_ids"`
}

// EligibleAssetResponse is an asset counted towards zakat.
type EligibleAssetResponse struct {
	AssetID     string        `json:"asset_id"`
	Type        string        `json:"type"`
	Value       MoneyResponse `json:"value"`
	ZakatAmount MoneyResponse `json:"zakat_amount"`
}

// IneligibleAssetResponse is an excluded asset with the reason.
type IneligibleAssetResponse struct {
	AssetID string        `json:"asset_id"`
	Type    string        `json:"type"`
	Value   MoneyResponse `json:"value"`
	Reason  string        `json:"reason"`
}

// CalculateZakatResponse is the outcome of a calculation.
type CalculateZakatResponse struct {
	CalculationDate  HijriDateResponse         `json:"calculation_date"`
	Currency         string                    `json:"currency"`
	NisabMethod      string                    `json:"nisab_method"`
	TotalWealth      MoneyResponse             `json:"total_wealth"`
	NisabThreshold   MoneyResponse             `json:"nisab_threshold"`
	IsAboveNisab     bool                      `json:"is_above_nisab"`
	ZakatDue         MoneyResponse             `json:"zakat_due"`
	EligibleAssets   []EligibleAssetResponse   `json:"eligible_assets"`
	IneligibleAssets []IneligibleAssetResponse `json:"ineligible_assets"`
	Warnings         []string                  `json:"warnings,omitempty"`
}

// ToCalculateZakatResponse converts the use case output.
func ToCalculateZakatResponse(out *zakat.CalculateZakatOutput) CalculateZakatResponse {
	r := out.Result
	resp := CalculateZakatResponse{
		CalculationDate:  ToHijriDateResponse(out.CalculationDate),
		Currency:         out.Currency.Code(),
		NisabMethod:      out.NisabMethod.String(),
		TotalWealth:      ToMoneyResponse(r.TotalWealth),
		NisabThreshold:   ToMoneyResponse(r.NisabThreshold),
		IsAboveNisab:     r.IsAboveNisab,
		ZakatDue:         ToMoneyResponse(r.ZakatDue),
		EligibleAssets:   make([]EligibleAssetResponse, 0, len(r.EligibleAssets)),
		IneligibleAssets: make([]IneligibleAssetResponse, 0, len(r.IneligibleAssets)),
		Warnings:         out.Warnings,
	}
	for _, e := range r.EligibleAssets {
		resp.EligibleAssets = append(resp.EligibleAssets, EligibleAssetResponse{
			AssetID:     e.Asset.ID.String(),
			Type:        string(e.Asset.Type),
			Value:       ToMoneyResponse(e.Asset.CurrentValue()),
			ZakatAmount: ToMoneyResponse(e.ZakatAmount),
		})
	}
	for _, i := range r.IneligibleAssets {
		resp.IneligibleAssets = append(resp.IneligibleAssets, IneligibleAssetResponse{
			AssetID: i.Asset.ID.String(),
			Type:    string(i.Asset.Type),
			Value:   ToMoneyResponse(i.Asset.CurrentValue()),
			Reason:  i.Reason,
		})
	}
	return resp
}

// NisabResponse is a priced nisab threshold.
type NisabResponse struct {
	Method       string        `json:"method"`
	Grams        string        `json:"grams"`
	PricePerGram MoneyResponse `json:"price_per_gram"`
	Threshold    MoneyResponse `json:"threshold"`
}

// ToNisabResponse converts the use case output.
func ToNisabResponse(out *zakat.GetNisabThresholdOutput) NisabResponse {
	return NisabResponse{
		Method:       out.Method.String(),
		Grams:        out.Grams.String(),
		PricePerGram: ToMoneyResponse(out.PricePerGram),
		Threshold:    ToMoneyResponse(out.Threshold),
	}
}

// HawlStatusResponse is where one asset stands in its lunar year.
type HawlStatusResponse struct {
	AssetID            string            `json:"asset_id"`
	Type               string            `json:"type"`
	HawlCompletionDate HijriDateResponse `json:"hawl_completion_date"`
	DaysUntilHawl      float64           `json:"days_until_hawl"`
	IsZakatable        bool              `json:"is_zakatable"`
}

// PortfolioSummaryResponse aggregates a user's wealth.
type PortfolioSummaryResponse struct {
	Currency         string                   `json:"currency"`
	TotalAssets      MoneyResponse            `json:"total_assets"`
	TotalLiabilities MoneyResponse            `json:"total_liabilities"`
	NetWealth        MoneyResponse            `json:"net_wealth"`
	InDebt           bool                     `json:"in_debt"`
	AssetCount       int                      `json:"asset_count"`
	ZakatableCount   int                      `json:"zakatable_count"`
	ValueByType      map[string]MoneyResponse `json:"value_by_type"`
	Hawl             []HawlStatusResponse     `json:"hawl"`
}

// ToPortfolioSummaryResponse converts the use case output.
func ToPortfolioSummaryResponse(out *zakat.GetPortfolioSummaryOutput) PortfolioSummaryResponse {
	resp := PortfolioSummaryResponse{
		Currency:         out.Currency.Code(),
		TotalAssets:      ToMoneyResponse(out.TotalAssets),
		TotalLiabilities: ToMoneyResponse(out.TotalLiabilities),
		NetWealth:        ToMoneyResponse(out.NetWealth),
		InDebt:           out.InDebt,
		AssetCount:       out.AssetCount,
		ZakatableCount:   out.ZakatableCount,
		ValueByType:      make(map[string]MoneyResponse, len(out.ValueByType)),
		Hawl:             make([]HawlStatusResponse, 0, len(out.Hawl)),
	}
	for t, v := range out.ValueByType {
		resp.ValueByType[string(t)] = ToMoneyResponse(v)
	}
	for _, h := range out.Hawl {
		resp.Hawl = append(resp.Hawl, HawlStatusResponse{
			AssetID:            h.Asset.ID.String(),
			Type:               string(h.Asset.Type),
			HawlCompletionDate: ToHijriDateResponse(h.HawlCompletionDate),
			DaysUntilHawl:      h.DaysUntilHawl,
			IsZakatable:        h.IsZakatable,
		})
	}
	sort.Slice(resp.Hawl, func(i, j int) bool {
		return resp.Hawl[i].DaysUntilHawl < resp.Hawl[j].DaysUntilHawl
	})
	return resp
}

// MarkAllPaidRequest represents POST /zakat/payments.
type MarkAllPaidRequest struct {
	PaidDate *time.Time `json:"paid_date"`
}

// MarkAllPaidResponse lists the assets marked paid.
type MarkAllPaidResponse struct {
	HijriYear int             `json:"hijri_year"`
	Assets    []AssetResponse `json:"assets"`
}

// ResetZakatYearResponse counts the assets whose payment was removed.
type ResetZakatYearResponse struct {
	HijriYear int `json:"hijri_year"`
	Reset     int `json:"reset"`
}
