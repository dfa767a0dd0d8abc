package aggregate

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

func usd(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoney(decimal.RequireFromString(amount), "USD")
	require.NoError(t, err)
	return m
}

func newUser() *entity.User {
	return entity.NewUser("owner@example.com", "Owner", "hash", valueobject.USD, valueobject.NisabMethodGold)
}

func newCash(t *testing.T, userID uuid.UUID, amount string) *entity.Asset {
	t.Helper()
	a, err := entity.NewMoneyAsset(userID, valueobject.AssetTypeCash, usd(t, amount), valueobject.MustHijriDate(1444, 1, 1), "cash")
	require.NoError(t, err)
	return a
}

func TestUserPortfolio_AddAsset(t *testing.T) {
	user := newUser()
	p, err := NewUserPortfolio(user, nil, nil)
	require.NoError(t, err)

	asset := newCash(t, user.ID, "1000")
	require.NoError(t, p.AddAsset(asset))

	err = p.AddAsset(asset)
	assert.ErrorIs(t, err, domainerror.ErrDuplicateAsset)

	err = p.AddAsset(newCash(t, uuid.New(), "10"))
	assert.ErrorIs(t, err, domainerror.ErrForeignOwner)
	assert.True(t, domainerror.IsInvariantViolation(err))

	assert.Len(t, p.Assets(), 1)
}

func TestUserPortfolio_ConstructionFailsFast(t *testing.T) {
	user := newUser()
	asset := newCash(t, user.ID, "1")

	_, err := NewUserPortfolio(user, []*entity.Asset{asset, asset}, nil)
	assert.ErrorIs(t, err, domainerror.ErrDuplicateAsset)
}

func TestUserPortfolio_NetWealth(t *testing.T) {
	user := newUser()
	p, err := NewUserPortfolio(user, nil, nil)
	require.NoError(t, err)

	empty, err := p.CalculateNetWealth()
	require.NoError(t, err)
	assert.True(t, empty.Equals(valueobject.Zero(valueobject.USD)))

	require.NoError(t, p.AddAsset(newCash(t, user.ID, "1000")))
	require.NoError(t, p.AddLiability(entity.NewLiability(user.ID, usd(t, "200"), "rent", nil, true)))

	net, err := p.CalculateNetWealth()
	require.NoError(t, err)
	assert.Equal(t, "USD 800.00", net.String())

	err = p.AddLiability(entity.NewLiability(uuid.New(), usd(t, "1"), "foreign", nil, true))
	assert.ErrorIs(t, err, domainerror.ErrForeignOwner)
}

func TestUserPortfolio_NetWealthNegative(t *testing.T) {
	user := newUser()
	p, err := NewUserPortfolio(user,
		[]*entity.Asset{newCash(t, user.ID, "100")},
		[]*entity.Liability{entity.NewLiability(user.ID, usd(t, "200"), "loan", nil, true)},
	)
	require.NoError(t, err)

	_, err = p.CalculateNetWealth()
	assert.ErrorIs(t, err, domainerror.ErrNegativeResult)
}

func TestUserPortfolio_UpdateAndRemove(t *testing.T) {
	user := newUser()
	asset := newCash(t, user.ID, "100")
	liability := entity.NewLiability(user.ID, usd(t, "50"), "card", nil, false)
	p, err := NewUserPortfolio(user, []*entity.Asset{asset}, []*entity.Liability{liability})
	require.NoError(t, err)

	require.NoError(t, p.UpdateAssetValue(asset.ID, usd(t, "300")))
	require.NoError(t, p.UpdateLiability(liability.ID, usd(t, "75")))

	total, err := p.CalculateTotalAssetValue()
	require.NoError(t, err)
	assert.Equal(t, "USD 300.00", total.String())

	debts, err := p.CalculateTotalLiabilities()
	require.NoError(t, err)
	assert.Equal(t, "USD 75.00", debts.String())

	require.NoError(t, p.RemoveAsset(asset.ID))
	assert.ErrorIs(t, p.RemoveAsset(asset.ID), domainerror.ErrAssetNotFound)
	require.NoError(t, p.RemoveLiability(liability.ID))
	_, err = p.Liability(liability.ID)
	assert.True(t, domainerror.IsNotFound(err))
}

func TestUserPortfolio_MarkAllZakatAsPaid(t *testing.T) {
	user := newUser()
	cash := newCash(t, user.ID, "1000")
	paid := newCash(t, user.ID, "400")
	current := valueobject.MustHijriDate(1445, 6, 1)
	require.NoError(t, paid.MarkZakatAsPaid(1445, usd(t, "10"), time.Now()))

	p, err := NewUserPortfolio(user, []*entity.Asset{cash, paid}, nil)
	require.NoError(t, err)
	assert.Len(t, p.ZakatableAssets(current), 1)

	require.NoError(t, p.MarkAllZakatAsPaid(current, time.Now()))
	assert.Empty(t, p.ZakatableAssets(current))

	history := cash.ZakatPaymentHistory()
	require.Len(t, history, 1)
	assert.Equal(t, "USD 25.00", history[0].Amount.String())
	assert.Len(t, paid.ZakatPaymentHistory(), 1)

	require.NoError(t, p.ResetAllZakatStatus(1445))
	assert.Len(t, p.ZakatableAssets(current), 2)
	require.NoError(t, p.ResetAllZakatStatus(1445))
}

func TestUserPortfolio_AssetsByType(t *testing.T) {
	user := newUser()
	bonds, err := entity.NewMoneyAsset(user.ID, valueobject.AssetTypeBonds, usd(t, "10"), valueobject.MustHijriDate(1444, 1, 1), "bonds")
	require.NoError(t, err)
	p, err := NewUserPortfolio(user, []*entity.Asset{newCash(t, user.ID, "1"), bonds}, nil)
	require.NoError(t, err)

	got := p.AssetsByType(valueobject.AssetTypeBonds)
	require.Len(t, got, 1)
	assert.Equal(t, bonds.ID, got[0].ID)
}
