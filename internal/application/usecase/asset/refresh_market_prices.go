package asset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// RefreshMarketPricesOutput counts the outcome of a refresh run.
type RefreshMarketPricesOutput struct {
	Processed int
	Updated   int
	Failed    int
}

// RefreshMarketPricesUseCase revalues every stock and precious metal asset
// at the latest market price. One failing asset does not stop the run.
type RefreshMarketPricesUseCase struct {
	assetRepo    adapter.AssetRepository
	priceService adapter.PriceService
	logger       *slog.Logger
}

// NewRefreshMarketPricesUseCase creates a new RefreshMarketPricesUseCase instance.
func NewRefreshMarketPricesUseCase(assetRepo adapter.AssetRepository, priceService adapter.PriceService) *RefreshMarketPricesUseCase {
	return &RefreshMarketPricesUseCase{
		assetRepo:    assetRepo,
		priceService: priceService,
		logger:       slog.With("component", "market_price_refresh"),
	}
}

// Execute runs one refresh pass.
func (uc *RefreshMarketPricesUseCase) Execute(ctx context.Context) (*RefreshMarketPricesOutput, error) {
	out := &RefreshMarketPricesOutput{}

	for _, kind := range []entity.AssetKind{entity.AssetKindStock, entity.AssetKindPreciousMetal} {
		assets, err := uc.assetRepo.FindByKind(ctx, kind)
		if err != nil {
			return out, fmt.Errorf("failed to load %s assets: %w", kind, err)
		}
		for _, a := range assets {
			out.Processed++
			if err := uc.refresh(ctx, a); err != nil {
				out.Failed++
				uc.logger.Warn("failed to refresh asset price",
					"asset_id", a.ID,
					"kind", a.Kind,
					"error", err,
				)
				continue
			}
			out.Updated++
		}
	}

	uc.logger.Info("market price refresh completed",
		"processed", out.Processed,
		"updated", out.Updated,
		"failed", out.Failed,
	)
	return out, nil
}

func (uc *RefreshMarketPricesUseCase) refresh(ctx context.Context, a *entity.Asset) error {
	var (
		price valueobject.Money
		err   error
	)
	if a.Kind == entity.AssetKindStock {
		price, err = uc.priceService.StockPrice(ctx, a.Stock().Symbol, a.Currency())
		if err != nil {
			return err
		}
		err = a.UpdatePricePerShare(price)
	} else {
		price, err = metalMarketPrice(ctx, uc.priceService, a.Type, a.Currency())
		if err != nil {
			return err
		}
		err = a.UpdateValueFromMarketPrice(price)
	}
	if err != nil {
		return err
	}
	return uc.assetRepo.Update(ctx, a)
}
