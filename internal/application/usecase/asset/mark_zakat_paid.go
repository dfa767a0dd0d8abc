package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// MarkAssetZakatPaidInput records a payment. HijriYear defaults to the
// current year and Amount to 2.5% of the current value.
type MarkAssetZakatPaidInput struct {
	UserID    uuid.UUID
	AssetID   uuid.UUID
	HijriYear int
	Amount    *decimal.Decimal
	PaidDate  time.Time
}

// MarkAssetZakatPaidOutput represents the output of recording a payment.
type MarkAssetZakatPaidOutput struct {
	Asset   *entity.Asset
	Payment entity.ZakatPayment
}

// MarkAssetZakatPaidUseCase records zakat paid on one asset.
type MarkAssetZakatPaidUseCase struct {
	assetRepo adapter.AssetRepository
	calendar  adapter.HijriCalendarService
}

// NewMarkAssetZakatPaidUseCase creates a new MarkAssetZakatPaidUseCase instance.
func NewMarkAssetZakatPaidUseCase(assetRepo adapter.AssetRepository, calendar adapter.HijriCalendarService) *MarkAssetZakatPaidUseCase {
	return &MarkAssetZakatPaidUseCase{
		assetRepo: assetRepo,
		calendar:  calendar,
	}
}

// Execute records the payment. A second payment for the same year fails.
func (uc *MarkAssetZakatPaidUseCase) Execute(ctx context.Context, input MarkAssetZakatPaidInput) (*MarkAssetZakatPaidOutput, error) {
	a, err := loadOwnedAsset(ctx, uc.assetRepo, input.UserID, input.AssetID)
	if err != nil {
		return nil, err
	}

	year := input.HijriYear
	if year == 0 {
		today, err := uc.calendar.CurrentDate(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get current hijri date: %w", err)
		}
		year = today.Year()
	}

	var amount valueobject.Money
	if input.Amount != nil {
		amount, err = valueobject.NewMoneyIn(*input.Amount, a.Currency())
	} else {
		amount, err = a.ZakatAmount()
	}
	if err != nil {
		return nil, err
	}

	paidDate := input.PaidDate
	if paidDate.IsZero() {
		paidDate = time.Now().UTC()
	}

	if err := a.MarkZakatAsPaid(year, amount, paidDate); err != nil {
		return nil, err
	}
	if err := uc.assetRepo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	return &MarkAssetZakatPaidOutput{
		Asset:   a,
		Payment: entity.ZakatPayment{HijriYear: year, PaidDate: paidDate, Amount: amount},
	}, nil
}

// ResetAssetZakatPaymentInput removes the payment recorded for a year.
type ResetAssetZakatPaymentInput struct {
	UserID    uuid.UUID
	AssetID   uuid.UUID
	HijriYear int
}

// ResetAssetZakatPaymentUseCase undoes a recorded payment.
type ResetAssetZakatPaymentUseCase struct {
	assetRepo adapter.AssetRepository
}

// NewResetAssetZakatPaymentUseCase creates a new ResetAssetZakatPaymentUseCase instance.
func NewResetAssetZakatPaymentUseCase(assetRepo adapter.AssetRepository) *ResetAssetZakatPaymentUseCase {
	return &ResetAssetZakatPaymentUseCase{assetRepo: assetRepo}
}

// Execute removes the payment and returns the updated asset.
func (uc *ResetAssetZakatPaymentUseCase) Execute(ctx context.Context, input ResetAssetZakatPaymentInput) (*entity.Asset, error) {
	a, err := loadOwnedAsset(ctx, uc.assetRepo, input.UserID, input.AssetID)
	if err != nil {
		return nil, err
	}
	if err := a.ResetZakatPayment(input.HijriYear); err != nil {
		return nil, err
	}
	if err := uc.assetRepo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}
	return a, nil
}
