// Package aggregate contains aggregate roots that enforce invariants across entities.
package aggregate

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// UserPortfolio owns one user's assets and liabilities. Totals are
// expressed in the user's currency. Collections keep insertion order.
type UserPortfolio struct {
	user        *entity.User
	assets      []*entity.Asset
	liabilities []*entity.Liability
}

// NewUserPortfolio builds a portfolio, adding the given entities one by one.
// The first ownership or uniqueness violation aborts construction.
func NewUserPortfolio(user *entity.User, assets []*entity.Asset, liabilities []*entity.Liability) (*UserPortfolio, error) {
	p := &UserPortfolio{user: user}
	for _, a := range assets {
		if err := p.AddAsset(a); err != nil {
			return nil, err
		}
	}
	for _, l := range liabilities {
		if err := p.AddLiability(l); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// User returns the portfolio owner.
func (p *UserPortfolio) User() *entity.User {
	return p.user
}

// Currency returns the currency totals are expressed in.
func (p *UserPortfolio) Currency() valueobject.Currency {
	return p.user.Currency
}

// Assets returns the owned assets.
func (p *UserPortfolio) Assets() []*entity.Asset {
	out := make([]*entity.Asset, len(p.assets))
	copy(out, p.assets)
	return out
}

// Liabilities returns the owned liabilities.
func (p *UserPortfolio) Liabilities() []*entity.Liability {
	out := make([]*entity.Liability, len(p.liabilities))
	copy(out, p.liabilities)
	return out
}

// AddAsset adds an asset owned by the portfolio user with an unused id.
func (p *UserPortfolio) AddAsset(asset *entity.Asset) error {
	if asset.UserID != p.user.ID {
		return foreignOwner("asset", asset.ID)
	}
	if p.assetIndex(asset.ID) >= 0 {
		return domainerror.NewZakatError(
			domainerror.ErrCodeDuplicateEntity,
			fmt.Sprintf("asset %s already exists in portfolio", asset.ID),
			domainerror.ErrDuplicateAsset,
		)
	}
	p.assets = append(p.assets, asset)
	return nil
}

// RemoveAsset drops an asset from the portfolio.
func (p *UserPortfolio) RemoveAsset(id uuid.UUID) error {
	i := p.assetIndex(id)
	if i < 0 {
		return assetNotFound(id)
	}
	p.assets = append(p.assets[:i:i], p.assets[i+1:]...)
	return nil
}

// UpdateAssetValue sets the value of an owned asset.
func (p *UserPortfolio) UpdateAssetValue(id uuid.UUID, value valueobject.Money) error {
	asset, err := p.Asset(id)
	if err != nil {
		return err
	}
	return asset.UpdateValue(value)
}

// Asset returns an owned asset by id.
func (p *UserPortfolio) Asset(id uuid.UUID) (*entity.Asset, error) {
	i := p.assetIndex(id)
	if i < 0 {
		return nil, assetNotFound(id)
	}
	return p.assets[i], nil
}

// AddLiability adds a liability owned by the portfolio user with an unused id.
func (p *UserPortfolio) AddLiability(liability *entity.Liability) error {
	if liability.UserID != p.user.ID {
		return foreignOwner("liability", liability.ID)
	}
	if p.liabilityIndex(liability.ID) >= 0 {
		return domainerror.NewZakatError(
			domainerror.ErrCodeDuplicateEntity,
			fmt.Sprintf("liability %s already exists in portfolio", liability.ID),
			domainerror.ErrDuplicateLiability,
		)
	}
	p.liabilities = append(p.liabilities, liability)
	return nil
}

// RemoveLiability drops a liability from the portfolio.
func (p *UserPortfolio) RemoveLiability(id uuid.UUID) error {
	i := p.liabilityIndex(id)
	if i < 0 {
		return liabilityNotFound(id)
	}
	p.liabilities = append(p.liabilities[:i:i], p.liabilities[i+1:]...)
	return nil
}

// UpdateLiability replaces the amount of an owned liability.
func (p *UserPortfolio) UpdateLiability(id uuid.UUID, amount valueobject.Money) error {
	liability, err := p.Liability(id)
	if err != nil {
		return err
	}
	liability.UpdateAmount(amount)
	return nil
}

// Liability returns an owned liability by id.
func (p *UserPortfolio) Liability(id uuid.UUID) (*entity.Liability, error) {
	i := p.liabilityIndex(id)
	if i < 0 {
		return nil, liabilityNotFound(id)
	}
	return p.liabilities[i], nil
}

// CalculateTotalAssetValue sums the current value of every asset.
func (p *UserPortfolio) CalculateTotalAssetValue() (valueobject.Money, error) {
	total := valueobject.Zero(p.Currency())
	for _, a := range p.assets {
		var err error
		if total, err = total.Add(a.CurrentValue()); err != nil {
			return valueobject.Money{}, err
		}
	}
	return total, nil
}

// CalculateTotalLiabilities sums the amount of every liability.
func (p *UserPortfolio) CalculateTotalLiabilities() (valueobject.Money, error) {
	total := valueobject.Zero(p.Currency())
	for _, l := range p.liabilities {
		var err error
		if total, err = total.Add(l.Amount); err != nil {
			return valueobject.Money{}, err
		}
	}
	return total, nil
}

// CalculateNetWealth is total assets minus total liabilities.
// It fails with ErrNegativeResult when liabilities exceed assets.
func (p *UserPortfolio) CalculateNetWealth() (valueobject.Money, error) {
	assets, err := p.CalculateTotalAssetValue()
	if err != nil {
		return valueobject.Money{}, err
	}
	liabilities, err := p.CalculateTotalLiabilities()
	if err != nil {
		return valueobject.Money{}, err
	}
	return assets.Subtract(liabilities)
}

// ZakatableAssets returns the assets with no payment recorded for the current year.
func (p *UserPortfolio) ZakatableAssets(current valueobject.HijriDate) []*entity.Asset {
	var out []*entity.Asset
	for _, a := range p.assets {
		if a.IsCurrentlyZakatable(current) {
			out = append(out, a)
		}
	}
	return out
}

// AssetsByType returns the assets of one type.
func (p *UserPortfolio) AssetsByType(assetType valueobject.AssetType) []*entity.Asset {
	var out []*entity.Asset
	for _, a := range p.assets {
		if a.Type == assetType {
			out = append(out, a)
		}
	}
	return out
}

// MarkAllZakatAsPaid records a 2.5% payment for the current Hijri year on
// every currently zakatable asset. Amounts are computed before any asset
// is touched, so a failure leaves the portfolio unchanged.
func (p *UserPortfolio) MarkAllZakatAsPaid(current valueobject.HijriDate, paidAt time.Time) error {
	assets := p.ZakatableAssets(current)
	amounts := make([]valueobject.Money, len(assets))
	for i, a := range assets {
		amount, err := a.ZakatAmount()
		if err != nil {
			return err
		}
		amounts[i] = amount
	}
	for i, a := range assets {
		if err := a.MarkZakatAsPaid(current.Year(), amounts[i], paidAt); err != nil {
			return err
		}
	}
	return nil
}

// ResetAllZakatStatus removes the payment for hijriYear from every asset that has one.
func (p *UserPortfolio) ResetAllZakatStatus(hijriYear int) error {
	for _, a := range p.assets {
		if !a.HasPaidZakatFor(hijriYear) {
			continue
		}
		if err := a.ResetZakatPayment(hijriYear); err != nil {
			return err
		}
	}
	return nil
}

func (p *UserPortfolio) assetIndex(id uuid.UUID) int {
	for i, a := range p.assets {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (p *UserPortfolio) liabilityIndex(id uuid.UUID) int {
	for i, l := range p.liabilities {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func foreignOwner(what string, id uuid.UUID) error {
	return domainerror.NewZakatError(
		domainerror.ErrCodeForeignOwner,
		fmt.Sprintf("%s %s does not belong to this user", what, id),
		domainerror.ErrForeignOwner,
	)
}

func assetNotFound(id uuid.UUID) error {
	return domainerror.NewZakatError(
		domainerror.ErrCodeAssetNotFound,
		fmt.Sprintf("asset %s not found in portfolio", id),
		domainerror.ErrAssetNotFound,
	)
}

func liabilityNotFound(id uuid.UUID) error {
	return domainerror.NewZakatError(
		domainerror.ErrCodeLiabilityNotFound,
		fmt.Sprintf("liability %s not found in portfolio", id),
		domainerror.ErrLiabilityNotFound,
	)
}
