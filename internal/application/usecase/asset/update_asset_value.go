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

// UpdateAssetValueInput carries a kind-specific valuation change:
//   - money: Value
//   - stock: Shares and/or PricePerShare
//   - precious metal: PricePerGram, or UseMarketPrice
//   - property: Value as the new appraisal, ValuedAt defaults to now
//
// UseMarketPrice also refreshes stock prices.
type UpdateAssetValueInput struct {
	UserID         uuid.UUID
	AssetID        uuid.UUID
	Value          *decimal.Decimal
	Shares         *decimal.Decimal
	PricePerShare  *decimal.Decimal
	PricePerGram   *decimal.Decimal
	UseMarketPrice bool
	ValuedAt       *time.Time
}

// UpdateAssetValueOutput represents the output of a valuation change.
type UpdateAssetValueOutput struct {
	Asset *entity.Asset
}

// UpdateAssetValueUseCase revalues an asset according to its kind.
type UpdateAssetValueUseCase struct {
	assetRepo    adapter.AssetRepository
	priceService adapter.PriceService
}

// NewUpdateAssetValueUseCase creates a new UpdateAssetValueUseCase instance.
func NewUpdateAssetValueUseCase(assetRepo adapter.AssetRepository, priceService adapter.PriceService) *UpdateAssetValueUseCase {
	return &UpdateAssetValueUseCase{
		assetRepo:    assetRepo,
		priceService: priceService,
	}
}

// Execute applies the change and saves the asset.
func (uc *UpdateAssetValueUseCase) Execute(ctx context.Context, input UpdateAssetValueInput) (*UpdateAssetValueOutput, error) {
	a, err := loadOwnedAsset(ctx, uc.assetRepo, input.UserID, input.AssetID)
	if err != nil {
		return nil, err
	}

	if err := uc.apply(ctx, a, input); err != nil {
		return nil, err
	}

	if err := uc.assetRepo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}
	return &UpdateAssetValueOutput{Asset: a}, nil
}

func (uc *UpdateAssetValueUseCase) apply(ctx context.Context, a *entity.Asset, input UpdateAssetValueInput) error {
	currency := a.Currency()

	switch a.Kind {
	case entity.AssetKindMoney:
		if input.Value == nil {
			return nothingToUpdate(a.Kind)
		}
		value, err := valueobject.NewMoneyIn(*input.Value, currency)
		if err != nil {
			return err
		}
		return a.UpdateValue(value)

	case entity.AssetKindStock:
		if input.Shares == nil && input.PricePerShare == nil && !input.UseMarketPrice {
			return nothingToUpdate(a.Kind)
		}
		if input.Shares != nil {
			if err := a.UpdateShares(*input.Shares); err != nil {
				return err
			}
		}
		var price valueobject.Money
		var err error
		switch {
		case input.PricePerShare != nil:
			price, err = valueobject.NewMoneyIn(*input.PricePerShare, currency)
		case input.UseMarketPrice:
			price, err = uc.priceService.StockPrice(ctx, a.Stock().Symbol, currency)
		default:
			return nil
		}
		if err != nil {
			return err
		}
		return a.UpdatePricePerShare(price)

	case entity.AssetKindPreciousMetal:
		var price valueobject.Money
		var err error
		switch {
		case input.PricePerGram != nil:
			price, err = valueobject.NewMoneyIn(*input.PricePerGram, currency)
		case input.UseMarketPrice:
			price, err = metalMarketPrice(ctx, uc.priceService, a.Type, currency)
		default:
			return nothingToUpdate(a.Kind)
		}
		if err != nil {
			return err
		}
		return a.UpdateValueFromMarketPrice(price)

	case entity.AssetKindProperty:
		if input.Value == nil {
			return nothingToUpdate(a.Kind)
		}
		appraisal, err := valueobject.NewMoneyIn(*input.Value, currency)
		if err != nil {
			return err
		}
		valuedAt := time.Now().UTC()
		if input.ValuedAt != nil {
			valuedAt = *input.ValuedAt
		}
		return a.Revalue(appraisal, valuedAt)
	}
	return nothingToUpdate(a.Kind)
}

func nothingToUpdate(kind entity.AssetKind) error {
	return domainerror.NewZakatError(
		domainerror.ErrCodeMissingFields,
		fmt.Sprintf("no valuation fields supplied for %s asset", kind),
		domainerror.ErrMissingFields,
	)
}
