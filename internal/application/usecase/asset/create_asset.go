package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// StockInput describes a stock position. A nil PricePerShare is looked up.
type StockInput struct {
	Symbol        string
	Shares        decimal.Decimal
	PricePerShare *decimal.Decimal
}

// MetalInput describes a gold or silver holding. A nil PricePerGram is looked up.
type MetalInput struct {
	Weight       decimal.Decimal
	Unit         string
	Karat        int
	SilverPurity decimal.Decimal
	PricePerGram *decimal.Decimal
}

// PropertyInput describes an investment property appraisal.
type PropertyInput struct {
	Address           string
	Appraisal         decimal.Decimal
	LastValuationDate time.Time
}

// CreateAssetInput represents the input for creating an asset.
// Exactly the detail block matching Kind is read. Currency defaults to the
// user's currency and AcquisitionDate to today.
type CreateAssetInput struct {
	UserID          uuid.UUID
	Kind            string
	Type            string
	Currency        string
	Value           decimal.Decimal
	AcquisitionDate string
	Description     string
	Stock           *StockInput
	Metal           *MetalInput
	Property        *PropertyInput
}

// CreateAssetOutput represents the output of creating an asset.
type CreateAssetOutput struct {
	Asset *entity.Asset
}

// CreateAssetUseCase validates and stores a new asset of any kind.
type CreateAssetUseCase struct {
	userRepo     adapter.UserRepository
	assetRepo    adapter.AssetRepository
	priceService adapter.PriceService
	calendar     adapter.HijriCalendarService
}

// NewCreateAssetUseCase creates a new CreateAssetUseCase instance.
func NewCreateAssetUseCase(
	userRepo adapter.UserRepository,
	assetRepo adapter.AssetRepository,
	priceService adapter.PriceService,
	calendar adapter.HijriCalendarService,
) *CreateAssetUseCase {
	return &CreateAssetUseCase{
		userRepo:     userRepo,
		assetRepo:    assetRepo,
		priceService: priceService,
		calendar:     calendar,
	}
}

// Execute creates the asset.
func (uc *CreateAssetUseCase) Execute(ctx context.Context, input CreateAssetInput) (*CreateAssetOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	currency := user.Currency
	if input.Currency != "" {
		if currency, err = valueobject.ParseCurrency(input.Currency); err != nil {
			return nil, err
		}
	}

	acquired, err := uc.acquisitionDate(ctx, input.AcquisitionDate)
	if err != nil {
		return nil, err
	}

	a, err := uc.build(ctx, input, currency, acquired)
	if err != nil {
		return nil, err
	}

	if err := uc.assetRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return &CreateAssetOutput{Asset: a}, nil
}

func (uc *CreateAssetUseCase) acquisitionDate(ctx context.Context, value string) (valueobject.HijriDate, error) {
	if value == "" {
		today, err := uc.calendar.CurrentDate(ctx)
		if err != nil {
			return valueobject.HijriDate{}, fmt.Errorf("failed to get current hijri date: %w", err)
		}
		return today, nil
	}
	return valueobject.ParseHijriDate(value)
}

func (uc *CreateAssetUseCase) build(ctx context.Context, input CreateAssetInput, currency valueobject.Currency, acquired valueobject.HijriDate) (*entity.Asset, error) {
	switch entity.AssetKind(input.Kind) {
	case entity.AssetKindMoney, "":
		assetType, err := valueobject.ParseAssetType(input.Type)
		if err != nil {
			return nil, err
		}
		value, err := valueobject.NewMoneyIn(input.Value, currency)
		if err != nil {
			return nil, err
		}
		return entity.NewMoneyAsset(input.UserID, assetType, value, acquired, input.Description)

	case entity.AssetKindStock:
		if input.Stock == nil {
			return nil, missingDetails("stock")
		}
		price, err := uc.stockPrice(ctx, input.Stock, currency)
		if err != nil {
			return nil, err
		}
		return entity.NewStockAsset(input.UserID, entity.StockDetails{
			Symbol:        input.Stock.Symbol,
			Shares:        input.Stock.Shares,
			PricePerShare: price,
		}, acquired, input.Description)

	case entity.AssetKindPreciousMetal:
		if input.Metal == nil {
			return nil, missingDetails("metal")
		}
		metal, err := valueobject.ParseAssetType(input.Type)
		if err != nil {
			return nil, err
		}
		price, err := uc.metalPrice(ctx, metal, input.Metal, currency)
		if err != nil {
			return nil, err
		}
		unit := entity.WeightUnit(input.Metal.Unit)
		if unit == "" {
			unit = entity.WeightUnitGrams
		}
		return entity.NewPreciousMetalAsset(input.UserID, metal, entity.MetalDetails{
			Weight:       input.Metal.Weight,
			Unit:         unit,
			Karat:        input.Metal.Karat,
			SilverPurity: input.Metal.SilverPurity,
			PricePerGram: price,
		}, acquired, input.Description)

	case entity.AssetKindProperty:
		if input.Property == nil {
			return nil, missingDetails("property")
		}
		appraisal, err := valueobject.NewMoneyIn(input.Property.Appraisal, currency)
		if err != nil {
			return nil, err
		}
		valuedAt := input.Property.LastValuationDate
		if valuedAt.IsZero() {
			valuedAt = time.Now().UTC()
		}
		return entity.NewPropertyAsset(input.UserID, entity.PropertyDetails{
			Address:           input.Property.Address,
			Appraisal:         appraisal,
			LastValuationDate: valuedAt,
		}, acquired, input.Description)
	}

	return nil, domainerror.NewZakatError(
		domainerror.ErrCodeInvalidAssetDetails,
		fmt.Sprintf("unknown asset kind %q", input.Kind),
		domainerror.ErrInvalidAssetDetails,
	)
}

func (uc *CreateAssetUseCase) stockPrice(ctx context.Context, in *StockInput, currency valueobject.Currency) (valueobject.Money, error) {
	if in.PricePerShare != nil {
		return valueobject.NewMoneyIn(*in.PricePerShare, currency)
	}
	return uc.priceService.StockPrice(ctx, in.Symbol, currency)
}

func (uc *CreateAssetUseCase) metalPrice(ctx context.Context, metal valueobject.AssetType, in *MetalInput, currency valueobject.Currency) (valueobject.Money, error) {
	if in.PricePerGram != nil {
		return valueobject.NewMoneyIn(*in.PricePerGram, currency)
	}
	return metalMarketPrice(ctx, uc.priceService, metal, currency)
}

func metalMarketPrice(ctx context.Context, prices adapter.PriceService, metal valueobject.AssetType, currency valueobject.Currency) (valueobject.Money, error) {
	if metal == valueobject.AssetTypeSilver {
		return prices.SilverPricePerGram(ctx, currency)
	}
	return prices.GoldPricePerGram(ctx, currency)
}

func missingDetails(kind string) error {
	return domainerror.NewZakatError(
		domainerror.ErrCodeMissingFields,
		kind+" details are required",
		domainerror.ErrMissingFields,
	)
}
