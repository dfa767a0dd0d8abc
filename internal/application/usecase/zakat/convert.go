// Package zakat contains the zakat calculation and portfolio use cases.
package zakat

import (
	"context"
	"fmt"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// converter restates assets and liabilities in one reporting currency.
// Rates are fetched once per source currency.
type converter struct {
	prices adapter.PriceService
	target valueobject.Currency
	rates  map[string]func(valueobject.Money) (valueobject.Money, error)
}

func newConverter(prices adapter.PriceService, target valueobject.Currency) *converter {
	return &converter{
		prices: prices,
		target: target,
		rates:  map[string]func(valueobject.Money) (valueobject.Money, error){},
	}
}

func (c *converter) money(ctx context.Context, m valueobject.Money) (valueobject.Money, error) {
	if m.Currency().Equals(c.target) {
		return m, nil
	}
	convert, ok := c.rates[m.Currency().Code()]
	if !ok {
		rate, err := c.prices.ConversionRate(ctx, m.Currency(), c.target)
		if err != nil {
			return valueobject.Money{}, fmt.Errorf("failed to get %s/%s rate: %w", m.Currency(), c.target, err)
		}
		convert = func(in valueobject.Money) (valueobject.Money, error) {
			return valueobject.NewMoneyIn(in.Amount().Mul(rate), c.target)
		}
		c.rates[m.Currency().Code()] = convert
	}
	return convert(m)
}

// asset returns a or a restated copy. The copy keeps the ID, hawl and payments.
func (c *converter) asset(ctx context.Context, a *entity.Asset) (*entity.Asset, error) {
	if a.Currency().Equals(c.target) {
		return a, nil
	}
	s := a.Snapshot()
	var err error
	if s.CurrentValue, err = c.money(ctx, s.CurrentValue); err != nil {
		return nil, err
	}
	if s.Stock != nil {
		if s.Stock.PricePerShare, err = c.money(ctx, s.Stock.PricePerShare); err != nil {
			return nil, err
		}
	}
	if s.Metal != nil {
		if s.Metal.PricePerGram, err = c.money(ctx, s.Metal.PricePerGram); err != nil {
			return nil, err
		}
	}
	if s.Property != nil {
		if s.Property.Appraisal, err = c.money(ctx, s.Property.Appraisal); err != nil {
			return nil, err
		}
	}
	for i := range s.Payments {
		if s.Payments[i].Amount, err = c.money(ctx, s.Payments[i].Amount); err != nil {
			return nil, err
		}
	}
	return entity.RestoreAsset(s)
}

func (c *converter) assets(ctx context.Context, in []*entity.Asset) ([]*entity.Asset, error) {
	out := make([]*entity.Asset, 0, len(in))
	for _, a := range in {
		converted, err := c.asset(ctx, a)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func (c *converter) liabilities(ctx context.Context, in []*entity.Liability) ([]*entity.Liability, error) {
	out := make([]*entity.Liability, 0, len(in))
	for _, l := range in {
		if l.Amount.Currency().Equals(c.target) {
			out = append(out, l)
			continue
		}
		amount, err := c.money(ctx, l.Amount)
		if err != nil {
			return nil, err
		}
		restated := *l
		restated.Amount = amount
		out = append(out, &restated)
	}
	return out, nil
}
