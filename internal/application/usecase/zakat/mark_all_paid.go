package zakat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/aggregate"
	"github.com/zakat-calculator/backend/internal/domain/entity"
)

// MarkAllZakatPaidInput represents the input for settling a whole portfolio.
type MarkAllZakatPaidInput struct {
	UserID   uuid.UUID
	PaidDate time.Time
}

// MarkAllZakatPaidOutput lists the assets a payment was recorded on.
type MarkAllZakatPaidOutput struct {
	HijriYear int
	Assets    []*entity.Asset
}

// MarkAllZakatPaidUseCase records this year's payment on every zakatable asset.
type MarkAllZakatPaidUseCase struct {
	userRepo  adapter.UserRepository
	assetRepo adapter.AssetRepository
	calendar  adapter.HijriCalendarService
}

// NewMarkAllZakatPaidUseCase creates a new MarkAllZakatPaidUseCase instance.
func NewMarkAllZakatPaidUseCase(userRepo adapter.UserRepository, assetRepo adapter.AssetRepository, calendar adapter.HijriCalendarService) *MarkAllZakatPaidUseCase {
	return &MarkAllZakatPaidUseCase{
		userRepo:  userRepo,
		assetRepo: assetRepo,
		calendar:  calendar,
	}
}

// Execute marks the assets and saves the ones that changed.
func (uc *MarkAllZakatPaidUseCase) Execute(ctx context.Context, input MarkAllZakatPaidInput) (*MarkAllZakatPaidOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	assets, err := uc.assetRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	portfolio, err := aggregate.NewUserPortfolio(user, assets, nil)
	if err != nil {
		return nil, err
	}
	today, err := uc.calendar.CurrentDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current hijri date: %w", err)
	}

	paidDate := input.PaidDate
	if paidDate.IsZero() {
		paidDate = time.Now().UTC()
	}

	marked := portfolio.ZakatableAssets(today)
	if err := portfolio.MarkAllZakatAsPaid(today, paidDate); err != nil {
		return nil, err
	}
	for _, a := range marked {
		if err := uc.assetRepo.Update(ctx, a); err != nil {
			return nil, fmt.Errorf("failed to update asset %s: %w", a.ID, err)
		}
	}
	return &MarkAllZakatPaidOutput{HijriYear: today.Year(), Assets: marked}, nil
}

// ResetZakatYearInput represents the input for undoing a year's payments.
type ResetZakatYearInput struct {
	UserID    uuid.UUID
	HijriYear int
}

// ResetZakatYearUseCase removes the payments of one Hijri year from every asset.
type ResetZakatYearUseCase struct {
	userRepo  adapter.UserRepository
	assetRepo adapter.AssetRepository
}

// NewResetZakatYearUseCase creates a new ResetZakatYearUseCase instance.
func NewResetZakatYearUseCase(userRepo adapter.UserRepository, assetRepo adapter.AssetRepository) *ResetZakatYearUseCase {
	return &ResetZakatYearUseCase{
		userRepo:  userRepo,
		assetRepo: assetRepo,
	}
}

// Execute returns how many assets were reset.
func (uc *ResetZakatYearUseCase) Execute(ctx context.Context, input ResetZakatYearInput) (int, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return 0, err
	}
	assets, err := uc.assetRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to load assets: %w", err)
	}
	var touched []*entity.Asset
	for _, a := range assets {
		if a.HasPaidZakatFor(input.HijriYear) {
			touched = append(touched, a)
		}
	}

	portfolio, err := aggregate.NewUserPortfolio(user, assets, nil)
	if err != nil {
		return 0, err
	}
	if err := portfolio.ResetAllZakatStatus(input.HijriYear); err != nil {
		return 0, err
	}
	for _, a := range touched {
		if err := uc.assetRepo.Update(ctx, a); err != nil {
			return 0, fmt.Errorf("failed to update asset %s: %w", a.ID, err)
		}
	}
	return len(touched), nil
}
