// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// PriceService defines the interface for market price lookups.
type PriceService interface {
	// GoldPricePerGram returns the gold price per gram in the given currency.
	GoldPricePerGram(ctx context.Context, currency valueobject.Currency) (valueobject.Money, error)

	// SilverPricePerGram returns the silver price per gram in the given currency.
	SilverPricePerGram(ctx context.Context, currency valueobject.Currency) (valueobject.Money, error)

	// StockPrice returns the price of one share.
	StockPrice(ctx context.Context, symbol string, currency valueobject.Currency) (valueobject.Money, error)

	// ConversionRate returns how many units of to one unit of from buys.
	ConversionRate(ctx context.Context, from, to valueobject.Currency) (decimal.Decimal, error)
}

// MetalPriceFor returns the per-gram price of the metal that prices a nisab method.
func MetalPriceFor(ctx context.Context, prices PriceService, method valueobject.NisabMethod, currency valueobject.Currency) (valueobject.Money, error) {
	if method.ReferenceMetal() == valueobject.AssetTypeSilver {
		return prices.SilverPricePerGram(ctx, currency)
	}
	return prices.GoldPricePerGram(ctx, currency)
}
