// Package service contains stateless domain services that coordinate entities.
package service

import (
	"github.com/shopspring/decimal"

	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// Ineligibility reasons reported for assets excluded from a calculation.
const (
	ReasonNotZakatable   = "Asset type is not zakatable"
	ReasonHawlIncomplete = "Hawl (one lunar year) not yet completed"
	ReasonAlreadyPaid    = "Zakat already paid for this cycle"
	ReasonBelowNisab     = "Total wealth is below the nisab threshold"
)

// EligibleAsset is an asset that counts towards zakat, with its informational share.
type EligibleAsset struct {
	Asset       *entity.Asset
	ZakatAmount valueobject.Money
}

// IneligibleAsset is an asset excluded from zakat, with the reason.
type IneligibleAsset struct {
	Asset  *entity.Asset
	Reason string
}

// ZakatCalculationResult is the outcome of CalculateTotalZakat. ZakatDue is
// the authoritative total; per-asset amounts are informational.
type ZakatCalculationResult struct {
	TotalWealth      valueobject.Money
	NisabThreshold   valueobject.Money
	IsAboveNisab     bool
	ZakatDue         valueobject.Money
	EligibleAssets   []EligibleAsset
	IneligibleAssets []IneligibleAsset
}

// ZakatCalculationService computes zakat obligations over in-memory entities.
type ZakatCalculationService struct{}

// NewZakatCalculationService creates a new ZakatCalculationService.
func NewZakatCalculationService() *ZakatCalculationService {
	return &ZakatCalculationService{}
}

// CalculateAssetZakat returns 2.5% of the asset value, or zero when the
// asset is not currently zakatable.
func (s *ZakatCalculationService) CalculateAssetZakat(asset *entity.Asset, current valueobject.HijriDate) (valueobject.Money, error) {
	if !asset.IsCurrentlyZakatable(current) {
		return valueobject.Zero(asset.Currency()), nil
	}
	return asset.ZakatAmount()
}

// CalculateTotalZakatableWealth sums the currently zakatable assets and
// subtracts deductible liabilities. The result currency is the first
// asset's currency, so an empty asset list fails with ErrNoAssets.
func (s *ZakatCalculationService) CalculateTotalZakatableWealth(assets []*entity.Asset, liabilities []*entity.Liability, current valueobject.HijriDate) (valueobject.Money, error) {
	if len(assets) == 0 {
		return valueobject.Money{}, domainerror.NewZakatError(
			domainerror.ErrCodeNoAssets,
			"cannot compute wealth without assets",
			domainerror.ErrNoAssets,
		)
	}

	total := valueobject.Zero(assets[0].Currency())
	var err error
	for _, a := range assets {
		if !a.IsCurrentlyZakatable(current) {
			continue
		}
		if total, err = total.Add(a.CurrentValue()); err != nil {
			return valueobject.Money{}, err
		}
	}

	for _, l := range liabilities {
		if !l.IsDeductible() {
			continue
		}
		if total, err = total.Subtract(l.Amount); err != nil {
			return valueobject.Money{}, err
		}
	}

	return total, nil
}

// CalculateTotalZakat compares total wealth with the nisab threshold.
// Below nisab nothing is due and every asset is ineligible. Otherwise assets
// that are zakatable with a completed hawl are eligible and 2.5% of the
// total wealth is due.
func (s *ZakatCalculationService) CalculateTotalZakat(assets []*entity.Asset, liabilities []*entity.Liability, nisab valueobject.Money, current valueobject.HijriDate) (*ZakatCalculationResult, error) {
	totalWealth, err := s.CalculateTotalZakatableWealth(assets, liabilities, current)
	if err != nil {
		return nil, err
	}

	aboveNisab, err := totalWealth.IsGreaterThanOrEqual(nisab)
	if err != nil {
		return nil, err
	}

	result := &ZakatCalculationResult{
		TotalWealth:    totalWealth,
		NisabThreshold: nisab,
		IsAboveNisab:   aboveNisab,
		ZakatDue:       valueobject.Zero(totalWealth.Currency()),
	}

	if !aboveNisab {
		for _, a := range assets {
			reason := s.IneligibilityReason(a, current)
			if reason == "" {
				reason = ReasonBelowNisab
			}
			result.IneligibleAssets = append(result.IneligibleAssets, IneligibleAsset{Asset: a, Reason: reason})
		}
		return result, nil
	}

	for _, a := range assets {
		if reason := s.IneligibilityReason(a, current); reason != "" {
			result.IneligibleAssets = append(result.IneligibleAssets, IneligibleAsset{Asset: a, Reason: reason})
			continue
		}
		amount, err := s.CalculateAssetZakat(a, current)
		if err != nil {
			return nil, err
		}
		result.EligibleAssets = append(result.EligibleAssets, EligibleAsset{Asset: a, ZakatAmount: amount})
	}

	if result.ZakatDue, err = totalWealth.Percentage(entity.ZakatRatePercent); err != nil {
		return nil, err
	}

	return result, nil
}

// IneligibilityReason explains why an asset is excluded, or returns "" when it is eligible.
func (s *ZakatCalculationService) IneligibilityReason(asset *entity.Asset, current valueobject.HijriDate) string {
	switch {
	case !asset.Type.IsZakatable():
		return ReasonNotZakatable
	case !asset.HasCompletedHawl(current):
		return ReasonHawlIncomplete
	case asset.HasPaidZakatFor(current.Year()):
		return ReasonAlreadyPaid
	}
	return ""
}

// CalculateNisab prices the nisab threshold: price per gram x grams required.
func (s *ZakatCalculationService) CalculateNisab(pricePerGram valueobject.Money, grams decimal.Decimal) (valueobject.Money, error) {
	return pricePerGram.Multiply(grams)
}

// CalculateNisabForMethod prices the threshold for the method's reference weight.
func (s *ZakatCalculationService) CalculateNisabForMethod(pricePerGram valueobject.Money, method valueobject.NisabMethod) (valueobject.Money, error) {
	return s.CalculateNisab(pricePerGram, method.ReferenceGrams())
}

// CalculateDaysUntilHawl estimates the days left before hawl completes,
// using 354-day years and 29.5-day months. It is 0 once hawl is complete.
func (s *ZakatCalculationService) CalculateDaysUntilHawl(acquired, current valueobject.HijriDate) float64 {
	// Adding a year to a valid date cannot leave the valid range.
	completion, _ := acquired.AddLunarYear(1)
	if current.IsAfterOrEqual(completion) {
		return 0
	}
	return current.ApproximateDaysUntil(completion)
}
