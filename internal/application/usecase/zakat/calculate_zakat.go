package zakat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/service"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// CalculateZakatInput represents the input for a zakat calculation.
// An empty AssetIDs calculates over every asset of the user.
type CalculateZakatInput struct {
	UserID   uuid.UUID
	AssetIDs []uuid.UUID
}

// CalculateZakatOutput is the calculation result in the user's currency.
type CalculateZakatOutput struct {
	CalculationDate valueobject.HijriDate
	Currency        valueobject.Currency
	NisabMethod     valueobject.NisabMethod
	Result          *service.ZakatCalculationResult
	// Warnings lists advisory notes such as stale property appraisals.
	Warnings []string
}

// CalculateZakatUseCase computes the zakat a user owes today.
type CalculateZakatUseCase struct {
	userRepo      adapter.UserRepository
	assetRepo     adapter.AssetRepository
	liabilityRepo adapter.LiabilityRepository
	priceService  adapter.PriceService
	calendar      adapter.HijriCalendarService
	calculator    *service.ZakatCalculationService
}

// NewCalculateZakatUseCase creates a new CalculateZakatUseCase instance.
func NewCalculateZakatUseCase(
	userRepo adapter.UserRepository,
	assetRepo adapter.AssetRepository,
	liabilityRepo adapter.LiabilityRepository,
	priceService adapter.PriceService,
	calendar adapter.HijriCalendarService,
) *CalculateZakatUseCase {
	return &CalculateZakatUseCase{
		userRepo:      userRepo,
		assetRepo:     assetRepo,
		liabilityRepo: liabilityRepo,
		priceService:  priceService,
		calendar:      calendar,
		calculator:    service.NewZakatCalculationService(),
	}
}

// Execute loads the user's portfolio, prices the nisab and runs the calculation.
func (uc *CalculateZakatUseCase) Execute(ctx context.Context, input CalculateZakatInput) (*CalculateZakatOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	assets, err := uc.assetRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	if len(input.AssetIDs) > 0 {
		if assets, err = selectAssets(assets, input.AssetIDs); err != nil {
			return nil, err
		}
	}

	liabilities, err := uc.liabilityRepo.FindDeductibleByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load liabilities: %w", err)
	}

	conv := newConverter(uc.priceService, user.Currency)
	if assets, err = conv.assets(ctx, assets); err != nil {
		return nil, err
	}
	if liabilities, err = conv.liabilities(ctx, liabilities); err != nil {
		return nil, err
	}

	today, err := uc.calendar.CurrentDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current hijri date: %w", err)
	}

	nisab, err := nisabThreshold(ctx, uc.priceService, uc.calculator, user.NisabMethod, user.Currency)
	if err != nil {
		return nil, err
	}

	result, err := uc.calculator.CalculateTotalZakat(assets, liabilities, nisab, today)
	if err != nil {
		return nil, err
	}

	warnings := staleAppraisals(assets, time.Now().UTC())
	for _, w := range warnings {
		slog.Warn("zakat calculated on stale appraisal", "user_id", user.ID, "warning", w)
	}

	return &CalculateZakatOutput{
		CalculationDate: today,
		Currency:        user.Currency,
		NisabMethod:     user.NisabMethod,
		Result:          result,
		Warnings:        warnings,
	}, nil
}

func selectAssets(assets []*entity.Asset, ids []uuid.UUID) ([]*entity.Asset, error) {
	byID := make(map[uuid.UUID]*entity.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}
	selected := make([]*entity.Asset, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, domainerror.NewZakatError(
				domainerror.ErrCodeAssetNotFound,
				fmt.Sprintf("asset %s not found", id),
				domainerror.ErrAssetNotFound,
			)
		}
		selected = append(selected, a)
	}
	return selected, nil
}

func staleAppraisals(assets []*entity.Asset, now time.Time) []string {
	var warnings []string
	for _, a := range assets {
		if a.NeedsRevaluation(now) {
			warnings = append(warnings, fmt.Sprintf(
				"property %q was last valued on %s and needs revaluation",
				a.Description, a.Property().LastValuationDate.Format("2006-01-02"),
			))
		}
	}
	return warnings
}

func nisabThreshold(
	ctx context.Context,
	prices adapter.PriceService,
	calculator *service.ZakatCalculationService,
	method valueobject.NisabMethod,
	currency valueobject.Currency,
) (valueobject.Money, error) {
	price, err := adapter.MetalPriceFor(ctx, prices, method, currency)
	if err != nil {
		return valueobject.Money{}, fmt.Errorf("failed to get %s price: %w", method.ReferenceMetal(), err)
	}
	return calculator.CalculateNisabForMethod(price, method)
}
