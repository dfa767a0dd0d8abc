package zakat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/aggregate"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/service"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// GetPortfolioSummaryInput represents the input for a portfolio summary.
type GetPortfolioSummaryInput struct {
	UserID uuid.UUID
}

// AssetHawlStatus reports where one asset stands in its lunar year.
type AssetHawlStatus struct {
	Asset              *entity.Asset
	HawlCompletionDate valueobject.HijriDate
	DaysUntilHawl      float64
	IsZakatable        bool
}

// GetPortfolioSummaryOutput aggregates a user's wealth in their currency.
// InDebt is set and NetWealth is zero when liabilities exceed assets.
type GetPortfolioSummaryOutput struct {
	Currency         valueobject.Currency
	TotalAssets      valueobject.Money
	TotalLiabilities valueobject.Money
	NetWealth        valueobject.Money
	InDebt           bool
	AssetCount       int
	ZakatableCount   int
	ValueByType      map[valueobject.AssetType]valueobject.Money
	Hawl             []AssetHawlStatus
}

// GetPortfolioSummaryUseCase builds the user's portfolio and totals it.
type GetPortfolioSummaryUseCase struct {
	userRepo      adapter.UserRepository
	assetRepo     adapter.AssetRepository
	liabilityRepo adapter.LiabilityRepository
	priceService  adapter.PriceService
	calendar      adapter.HijriCalendarService
	calculator    *service.ZakatCalculationService
}

// NewGetPortfolioSummaryUseCase creates a new GetPortfolioSummaryUseCase instance.
func NewGetPortfolioSummaryUseCase(
	userRepo adapter.UserRepository,
	assetRepo adapter.AssetRepository,
	liabilityRepo adapter.LiabilityRepository,
	priceService adapter.PriceService,
	calendar adapter.HijriCalendarService,
) *GetPortfolioSummaryUseCase {
	return &GetPortfolioSummaryUseCase{
		userRepo:      userRepo,
		assetRepo:     assetRepo,
		liabilityRepo: liabilityRepo,
		priceService:  priceService,
		calendar:      calendar,
		calculator:    service.NewZakatCalculationService(),
	}
}

// Execute returns the summary.
func (uc *GetPortfolioSummaryUseCase) Execute(ctx context.Context, input GetPortfolioSummaryInput) (*GetPortfolioSummaryOutput, error) {
	portfolio, err := loadPortfolio(ctx, uc.userRepo, uc.assetRepo, uc.liabilityRepo, uc.priceService, input.UserID)
	if err != nil {
		return nil, err
	}
	today, err := uc.calendar.CurrentDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current hijri date: %w", err)
	}

	out := &GetPortfolioSummaryOutput{
		Currency:    portfolio.Currency(),
		AssetCount:  len(portfolio.Assets()),
		ValueByType: map[valueobject.AssetType]valueobject.Money{},
	}
	if out.TotalAssets, err = portfolio.CalculateTotalAssetValue(); err != nil {
		return nil, err
	}
	if out.TotalLiabilities, err = portfolio.CalculateTotalLiabilities(); err != nil {
		return nil, err
	}
	out.NetWealth, err = portfolio.CalculateNetWealth()
	switch {
	case errors.Is(err, domainerror.ErrNegativeResult):
		out.NetWealth = valueobject.Zero(portfolio.Currency())
		out.InDebt = true
	case err != nil:
		return nil, err
	}

	out.ZakatableCount = len(portfolio.ZakatableAssets(today))
	for _, t := range valueobject.AllZakatableTypes() {
		byType := portfolio.AssetsByType(t)
		if len(byType) == 0 {
			continue
		}
		sum := valueobject.Zero(portfolio.Currency())
		for _, a := range byType {
			if sum, err = sum.Add(a.CurrentValue()); err != nil {
				return nil, err
			}
		}
		out.ValueByType[t] = sum
	}

	for _, a := range portfolio.Assets() {
		out.Hawl = append(out.Hawl, AssetHawlStatus{
			Asset:              a,
			HawlCompletionDate: a.HawlCompletionDate(),
			DaysUntilHawl:      uc.calculator.CalculateDaysUntilHawl(a.AcquisitionDate, today),
			IsZakatable:        uc.calculator.IneligibilityReason(a, today) == "",
		})
	}
	return out, nil
}

// loadPortfolio restates every asset and liability in the user's currency.
func loadPortfolio(
	ctx context.Context,
	userRepo adapter.UserRepository,
	assetRepo adapter.AssetRepository,
	liabilityRepo adapter.LiabilityRepository,
	prices adapter.PriceService,
	userID uuid.UUID,
) (*aggregate.UserPortfolio, error) {
	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	assets, err := assetRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	liabilities, err := liabilityRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load liabilities: %w", err)
	}

	conv := newConverter(prices, user.Currency)
	if assets, err = conv.assets(ctx, assets); err != nil {
		return nil, err
	}
	if liabilities, err = conv.liabilities(ctx, liabilities); err != nil {
		return nil, err
	}
	return aggregate.NewUserPortfolio(user, assets, liabilities)
}
