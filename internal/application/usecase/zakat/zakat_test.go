package zakat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakat-calculator/backend/internal/application/usecase/usecasetest"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/service"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

var today = valueobject.MustHijriDate(1446, 5, 10)

type fixture struct {
	user        *entity.User
	users       *usecasetest.UserRepo
	assets      *usecasetest.AssetRepo
	liabilities *usecasetest.LiabilityRepo
	prices      *usecasetest.PriceService
	calendar    *usecasetest.Calendar
}

func newFixture() *fixture {
	u := entity.NewUser("aisha@example.com", "Aisha", "hash", valueobject.USD, valueobject.NisabMethodGold)
	return &fixture{
		user:        u,
		users:       usecasetest.NewUserRepo(u),
		assets:      usecasetest.NewAssetRepo(),
		liabilities: usecasetest.NewLiabilityRepo(),
		prices:      &usecasetest.PriceService{Gold: decimal.NewFromInt(70), Silver: decimal.NewFromInt(1)},
		calendar:    &usecasetest.Calendar{Today: today},
	}
}

func (f *fixture) money(t *testing.T, amount int64, currency string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoney(decimal.NewFromInt(amount), currency)
	require.NoError(t, err)
	return m
}

func (f *fixture) addCash(t *testing.T, assetType valueobject.AssetType, amount int64, currency string, acquired valueobject.HijriDate) *entity.Asset {
	t.Helper()
	a, err := entity.NewMoneyAsset(f.user.ID, assetType, f.money(t, amount, currency), acquired, string(assetType))
	require.NoError(t, err)
	require.NoError(t, f.assets.Create(context.Background(), a))
	return a
}

func (f *fixture) addLiability(t *testing.T, amount int64, immediate bool) {
	t.Helper()
	l := entity.NewLiability(f.user.ID, f.money(t, amount, "USD"), "debt", nil, immediate)
	require.NoError(t, f.liabilities.Create(context.Background(), l))
}

func (f *fixture) calculate(t *testing.T, ids ...uuid.UUID) (*CalculateZakatOutput, error) {
	t.Helper()
	uc := NewCalculateZakatUseCase(f.users, f.assets, f.liabilities, f.prices, f.calendar)
	return uc.Execute(context.Background(), CalculateZakatInput{UserID: f.user.ID, AssetIDs: ids})
}

func TestCalculateZakat_AboveNisab(t *testing.T) {
	f := newFixture()
	cash := f.addCash(t, valueobject.AssetTypeCash, 10000, "USD", valueobject.MustHijriDate(1445, 1, 1))
	bonds := f.addCash(t, valueobject.AssetTypeBonds, 2000, "USD", valueobject.MustHijriDate(1446, 3, 1))
	f.addLiability(t, 1000, true)
	f.addLiability(t, 50000, false)

	out, err := f.calculate(t)
	require.NoError(t, err)

	r := out.Result
	assert.True(t, out.CalculationDate.Equals(today))
	assert.Equal(t, "USD 5950.00", r.NisabThreshold.String())
	assert.Equal(t, "USD 11000.00", r.TotalWealth.String())
	assert.True(t, r.IsAboveNisab)
	assert.Equal(t, "USD 275.00", r.ZakatDue.String())

	require.Len(t, r.EligibleAssets, 1)
	assert.Equal(t, cash.ID, r.EligibleAssets[0].Asset.ID)
	assert.Equal(t, "USD 250.00", r.EligibleAssets[0].ZakatAmount.String())

	require.Len(t, r.IneligibleAssets, 1)
	assert.Equal(t, bonds.ID, r.IneligibleAssets[0].Asset.ID)
	assert.Equal(t, service.ReasonHawlIncomplete, r.IneligibleAssets[0].Reason)
}

func TestCalculateZakat_BelowNisab(t *testing.T) {
	f := newFixture()
	f.addCash(t, valueobject.AssetTypeCash, 100, "USD", valueobject.MustHijriDate(1440, 1, 1))

	out, err := f.calculate(t)
	require.NoError(t, err)
	assert.False(t, out.Result.IsAboveNisab)
	assert.True(t, out.Result.ZakatDue.IsZero())
	require.Len(t, out.Result.IneligibleAssets, 1)
	assert.Equal(t, service.ReasonBelowNisab, out.Result.IneligibleAssets[0].Reason)
}

func TestCalculateZakat_SilverMethod(t *testing.T) {
	f := newFixture()
	f.user.UpdateNisabMethod(valueobject.NisabMethodSilver)
	f.addCash(t, valueobject.AssetTypeCash, 1000, "USD", valueobject.MustHijriDate(1440, 1, 1))

	out, err := f.calculate(t)
	require.NoError(t, err)
	assert.Equal(t, "USD 595.00", out.Result.NisabThreshold.String())
	assert.True(t, out.Result.IsAboveNisab)
	assert.Equal(t, valueobject.NisabMethodSilver, out.NisabMethod)
}

func TestCalculateZakat_ConvertsForeignCurrencyAssets(t *testing.T) {
	f := newFixture()
	eur := f.addCash(t, valueobject.AssetTypeCash, 8000, "EUR", valueobject.MustHijriDate(1440, 1, 1))

	out, err := f.calculate(t)
	require.NoError(t, err)
	assert.Equal(t, "USD 8000.00", out.Result.TotalWealth.String())
	require.Len(t, out.Result.EligibleAssets, 1)
	assert.Equal(t, eur.ID, out.Result.EligibleAssets[0].Asset.ID)
	assert.Equal(t, "EUR", eur.Currency().Code(), "stored asset must not be modified")
}

func TestCalculateZakat_Errors(t *testing.T) {
	t.Run("no assets", func(t *testing.T) {
		_, err := newFixture().calculate(t)
		assert.ErrorIs(t, err, domainerror.ErrNoAssets)
	})

	t.Run("liabilities exceed wealth", func(t *testing.T) {
		f := newFixture()
		f.addCash(t, valueobject.AssetTypeCash, 100, "USD", valueobject.MustHijriDate(1440, 1, 1))
		f.addLiability(t, 500, true)
		_, err := f.calculate(t)
		assert.ErrorIs(t, err, domainerror.ErrNegativeResult)
	})

	t.Run("unknown asset in subset", func(t *testing.T) {
		f := newFixture()
		f.addCash(t, valueobject.AssetTypeCash, 100, "USD", valueobject.MustHijriDate(1440, 1, 1))
		_, err := f.calculate(t, uuid.New())
		assert.True(t, domainerror.IsNotFound(err))
	})

	t.Run("price unavailable", func(t *testing.T) {
		f := newFixture()
		f.prices.Fail = true
		f.addCash(t, valueobject.AssetTypeCash, 100, "USD", valueobject.MustHijriDate(1440, 1, 1))
		_, err := f.calculate(t)
		assert.ErrorIs(t, err, usecasetest.ErrInjected)
	})
}

func TestCalculateZakat_SubsetAndStaleWarning(t *testing.T) {
	f := newFixture()
	f.addCash(t, valueobject.AssetTypeCash, 100000, "USD", valueobject.MustHijriDate(1440, 1, 1))
	house, err := entity.NewPropertyAsset(f.user.ID, entity.PropertyDetails{
		Address:           "1 Main St",
		Appraisal:         f.money(t, 10000, "USD"),
		LastValuationDate: time.Now().AddDate(-2, 0, 0),
	}, valueobject.MustHijriDate(1440, 1, 1), "rental")
	require.NoError(t, err)
	require.NoError(t, f.assets.Create(context.Background(), house))

	out, err := f.calculate(t, house.ID)
	require.NoError(t, err)
	assert.Equal(t, "USD 10000.00", out.Result.TotalWealth.String())
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "rental")
}

func TestGetNisabThreshold(t *testing.T) {
	f := newFixture()
	uc := NewGetNisabThresholdUseCase(f.users, f.prices)

	out, err := uc.Execute(context.Background(), GetNisabThresholdInput{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, valueobject.NisabMethodGold, out.Method)
	assert.True(t, out.Grams.Equal(decimal.NewFromInt(85)))
	assert.Equal(t, "USD 5950.00", out.Threshold.String())

	out, err = uc.Execute(context.Background(), GetNisabThresholdInput{UserID: f.user.ID, Method: "silver", Currency: "GBP"})
	require.NoError(t, err)
	assert.Equal(t, "GBP 595.00", out.Threshold.String())

	_, err = uc.Execute(context.Background(), GetNisabThresholdInput{UserID: f.user.ID, Method: "bronze"})
	assert.ErrorIs(t, err, domainerror.ErrInvalidNisabMethod)
}

func TestGetPortfolioSummary(t *testing.T) {
	f := newFixture()
	f.addCash(t, valueobject.AssetTypeCash, 3000, "USD", valueobject.MustHijriDate(1440, 1, 1))
	f.addCash(t, valueobject.AssetTypeCash, 1000, "USD", valueobject.MustHijriDate(1446, 4, 10))
	f.addCash(t, valueobject.AssetTypeBonds, 500, "EUR", valueobject.MustHijriDate(1440, 1, 1))
	f.addLiability(t, 1500, false)

	out, err := NewGetPortfolioSummaryUseCase(f.users, f.assets, f.liabilities, f.prices, f.calendar).
		Execute(context.Background(), GetPortfolioSummaryInput{UserID: f.user.ID})
	require.NoError(t, err)

	assert.Equal(t, "USD 4500.00", out.TotalAssets.String())
	assert.Equal(t, "USD 1500.00", out.TotalLiabilities.String())
	assert.Equal(t, "USD 3000.00", out.NetWealth.String())
	assert.False(t, out.InDebt)
	assert.Equal(t, 3, out.AssetCount)
	assert.Equal(t, 3, out.ZakatableCount)
	assert.Equal(t, "USD 4000.00", out.ValueByType[valueobject.AssetTypeCash].String())
	assert.Equal(t, "USD 500.00", out.ValueByType[valueobject.AssetTypeBonds].String())

	require.Len(t, out.Hawl, 3)
	assert.True(t, out.Hawl[0].IsZakatable)
	assert.Zero(t, out.Hawl[0].DaysUntilHawl)
	assert.False(t, out.Hawl[1].IsZakatable)
	assert.InDelta(t, 324.5, out.Hawl[1].DaysUntilHawl, 0.001)
}

func TestGetPortfolioSummary_InDebt(t *testing.T) {
	f := newFixture()
	f.addCash(t, valueobject.AssetTypeCash, 100, "USD", valueobject.MustHijriDate(1440, 1, 1))
	f.addLiability(t, 500, false)

	out, err := NewGetPortfolioSummaryUseCase(f.users, f.assets, f.liabilities, f.prices, f.calendar).
		Execute(context.Background(), GetPortfolioSummaryInput{UserID: f.user.ID})
	require.NoError(t, err)
	assert.True(t, out.InDebt)
	assert.True(t, out.NetWealth.IsZero())
}

func TestMarkAllZakatPaidAndReset(t *testing.T) {
	f := newFixture()
	old := f.addCash(t, valueobject.AssetTypeCash, 1000, "USD", valueobject.MustHijriDate(1440, 1, 1))
	recent := f.addCash(t, valueobject.AssetTypeBonds, 400, "USD", valueobject.MustHijriDate(1446, 4, 1))

	out, err := NewMarkAllZakatPaidUseCase(f.users, f.assets, f.calendar).
		Execute(context.Background(), MarkAllZakatPaidInput{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Equal(t, 1446, out.HijriYear)
	assert.Len(t, out.Assets, 2)
	assert.True(t, old.HasPaidZakatFor(1446))
	assert.True(t, recent.HasPaidZakatFor(1446))
	assert.Equal(t, 2, f.assets.Updates)

	reset, err := NewResetZakatYearUseCase(f.users, f.assets).
		Execute(context.Background(), ResetZakatYearInput{UserID: f.user.ID, HijriYear: 1446})
	require.NoError(t, err)
	assert.Equal(t, 2, reset)
	assert.False(t, old.HasPaidZakatFor(1446))
}
