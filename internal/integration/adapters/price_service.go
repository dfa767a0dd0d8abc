package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

const (
	metalGold   = "gold"
	metalSilver = "silver"
)

// FallbackPrices are per-gram metal prices used when no quote is cached.
type FallbackPrices struct {
	Currency valueobject.Currency
	Gold     decimal.Decimal
	Silver   decimal.Decimal
}

// RedisPriceService serves market quotes cached in Redis under
//
//	price:gold:<CUR>, price:silver:<CUR>    per-gram metal prices
//	price:stock:<SYMBOL>:<CUR>              per-share prices
//	fx:<FROM>:<TO>                          conversion rates
//
// Values are decimal strings. Metal prices missing from the cache fall back
// to the configured table, converted through the cached rates.
type RedisPriceService struct {
	client   *redis.Client
	ttl      time.Duration
	fallback FallbackPrices
}

var _ adapter.PriceService = (*RedisPriceService)(nil)

// NewRedisPriceService creates a price service. Quotes written through the
// Set methods expire after ttl; zero keeps them forever.
func NewRedisPriceService(client *redis.Client, ttl time.Duration, fallback FallbackPrices) *RedisPriceService {
	return &RedisPriceService{client: client, ttl: ttl, fallback: fallback}
}

// GoldPricePerGram returns the gold price per gram.
func (s *RedisPriceService) GoldPricePerGram(ctx context.Context, currency valueobject.Currency) (valueobject.Money, error) {
	return s.metalPrice(ctx, metalGold, s.fallback.Gold, currency)
}

// SilverPricePerGram returns the silver price per gram.
func (s *RedisPriceService) SilverPricePerGram(ctx context.Context, currency valueobject.Currency) (valueobject.Money, error) {
	return s.metalPrice(ctx, metalSilver, s.fallback.Silver, currency)
}

// StockPrice returns the cached share price. A quote cached in another
// currency is not converted.
func (s *RedisPriceService) StockPrice(ctx context.Context, symbol string, currency valueobject.Currency) (valueobject.Money, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	price, found, err := s.get(ctx, stockKey(symbol, currency))
	if err != nil {
		return valueobject.Money{}, err
	}
	if !found {
		return valueobject.Money{}, unavailable(fmt.Sprintf("no %s quote for %s", currency.Code(), symbol))
	}
	return valueobject.NewMoneyIn(price, currency)
}

// ConversionRate returns units of to per unit of from. A missing direct rate
// is derived from the inverse one.
func (s *RedisPriceService) ConversionRate(ctx context.Context, from, to valueobject.Currency) (decimal.Decimal, error) {
	if from.Equals(to) {
		return decimal.NewFromInt(1), nil
	}
	rate, found, err := s.get(ctx, fxKey(from, to))
	if err != nil {
		return decimal.Zero, err
	}
	if found {
		return rate, nil
	}

	inverse, found, err := s.get(ctx, fxKey(to, from))
	if err != nil {
		return decimal.Zero, err
	}
	if !found || inverse.IsZero() {
		return decimal.Zero, unavailable(fmt.Sprintf("no conversion rate from %s to %s", from.Code(), to.Code()))
	}
	return decimal.NewFromInt(1).DivRound(inverse, 10), nil
}

// SetMetalPrice caches a per-gram price for gold or silver.
func (s *RedisPriceService) SetMetalPrice(ctx context.Context, metal valueobject.AssetType, price valueobject.Money) error {
	var name string
	switch metal {
	case valueobject.AssetTypeGold:
		name = metalGold
	case valueobject.AssetTypeSilver:
		name = metalSilver
	default:
		return domainerror.NewZakatError(
			domainerror.ErrCodeInvalidAssetType,
			fmt.Sprintf("%s is not a precious metal", metal),
			domainerror.ErrInvalidAssetType,
		)
	}
	return s.set(ctx, metalKey(name, price.Currency()), price.Amount())
}

// SetStockPrice caches a per-share price.
func (s *RedisPriceService) SetStockPrice(ctx context.Context, symbol string, price valueobject.Money) error {
	return s.set(ctx, stockKey(strings.ToUpper(strings.TrimSpace(symbol)), price.Currency()), price.Amount())
}

// SetConversionRate caches units of to per unit of from.
func (s *RedisPriceService) SetConversionRate(ctx context.Context, from, to valueobject.Currency, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return domainerror.NewZakatError(domainerror.ErrCodeNegativeAmount, "conversion rate must be positive", domainerror.ErrNegativeAmount)
	}
	return s.set(ctx, fxKey(from, to), rate)
}

func (s *RedisPriceService) metalPrice(ctx context.Context, metal string, fallback decimal.Decimal, currency valueobject.Currency) (valueobject.Money, error) {
	price, found, err := s.get(ctx, metalKey(metal, currency))
	if err != nil {
		return valueobject.Money{}, err
	}
	if found {
		return valueobject.NewMoneyIn(price, currency)
	}

	if fallback.IsZero() || s.fallback.Currency.IsZero() {
		return valueobject.Money{}, unavailable(fmt.Sprintf("no %s price in %s", metal, currency.Code()))
	}
	rate, err := s.ConversionRate(ctx, s.fallback.Currency, currency)
	if err != nil {
		return valueobject.Money{}, err
	}
	return valueobject.NewMoneyIn(fallback.Mul(rate), currency)
}

func (s *RedisPriceService) get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	raw, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("malformed quote at %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisPriceService) set(ctx context.Context, key string, value decimal.Decimal) error {
	if err := s.client.Set(ctx, key, value.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func metalKey(metal string, currency valueobject.Currency) string {
	return "price:" + metal + ":" + currency.Code()
}

func stockKey(symbol string, currency valueobject.Currency) string {
	return "price:stock:" + symbol + ":" + currency.Code()
}

func fxKey(from, to valueobject.Currency) string {
	return "fx:" + from.Code() + ":" + to.Code()
}

func unavailable(message string) error {
	return domainerror.NewZakatError(domainerror.ErrCodePriceUnavailable, message, domainerror.ErrPriceUnavailable)
}
