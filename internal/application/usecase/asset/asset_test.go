package asset

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
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

var today = valueobject.MustHijriDate(1446, 5, 10)

type fixture struct {
	user      *entity.User
	users     *usecasetest.UserRepo
	assets    *usecasetest.AssetRepo
	reminders *usecasetest.ReminderRepo
	prices    *usecasetest.PriceService
	calendar  *usecasetest.Calendar
}

func newFixture() *fixture {
	u := entity.NewUser("aisha@example.com", "Aisha", "hash", valueobject.USD, valueobject.NisabMethodGold)
	return &fixture{
		user:      u,
		users:     usecasetest.NewUserRepo(u),
		assets:    usecasetest.NewAssetRepo(),
		reminders: usecasetest.NewReminderRepo(),
		prices: &usecasetest.PriceService{
			Gold:   decimal.NewFromInt(70),
			Silver: decimal.RequireFromString("0.9"),
			Stocks: map[string]decimal.Decimal{"AAPL": decimal.NewFromInt(200)},
		},
		calendar: &usecasetest.Calendar{Today: today},
	}
}

func (f *fixture) create(t *testing.T, input CreateAssetInput) *entity.Asset {
	t.Helper()
	input.UserID = f.user.ID
	out, err := NewCreateAssetUseCase(f.users, f.assets, f.prices, f.calendar).Execute(context.Background(), input)
	require.NoError(t, err)
	return out.Asset
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateAsset_Kinds(t *testing.T) {
	f := newFixture()

	t.Run("money defaults to user currency and today", func(t *testing.T) {
		a := f.create(t, CreateAssetInput{Type: "cash", Value: decimal.NewFromInt(1000)})
		assert.Equal(t, entity.AssetKindMoney, a.Kind)
		assert.Equal(t, "USD 1000.00", a.CurrentValue().String())
		assert.True(t, a.AcquisitionDate.Equals(today))
	})

	t.Run("stock priced from market", func(t *testing.T) {
		a := f.create(t, CreateAssetInput{
			Kind:            "stock",
			AcquisitionDate: "1445-01-01H",
			Stock:           &StockInput{Symbol: "AAPL", Shares: decimal.NewFromInt(3)},
		})
		assert.Equal(t, "USD 600.00", a.CurrentValue().String())
		assert.Equal(t, 1445, a.AcquisitionDate.Year())
	})

	t.Run("gold priced from market", func(t *testing.T) {
		a := f.create(t, CreateAssetInput{
			Kind:  "precious_metal",
			Type:  "GOLD",
			Metal: &MetalInput{Weight: decimal.NewFromInt(10), Karat: 22},
		})
		assert.Equal(t, "USD 700.00", a.CurrentValue().String())
		assert.Equal(t, entity.WeightUnitGrams, a.Metal().Unit)
	})

	t.Run("silver with explicit price", func(t *testing.T) {
		a := f.create(t, CreateAssetInput{
			Kind: "precious_metal",
			Type: "SILVER",
			Metal: &MetalInput{
				Weight:       decimal.NewFromInt(100),
				SilverPurity: decimal.NewFromInt(925),
				PricePerGram: dec("1.5"),
			},
		})
		assert.Equal(t, "USD 150.00", a.CurrentValue().String())
	})

	t.Run("property", func(t *testing.T) {
		a := f.create(t, CreateAssetInput{
			Kind:     "property",
			Currency: "EUR",
			Property: &PropertyInput{Address: "1 Main St", Appraisal: decimal.NewFromInt(250000)},
		})
		assert.Equal(t, "EUR 250000.00", a.CurrentValue().String())
		assert.False(t, a.NeedsRevaluation(time.Now()))
	})
}

func TestCreateAsset_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input CreateAssetInput
		want  error
	}{
		{"unknown kind", CreateAssetInput{Kind: "art"}, domainerror.ErrInvalidAssetDetails},
		{"missing stock details", CreateAssetInput{Kind: "stock"}, domainerror.ErrMissingFields},
		{"money with metal type", CreateAssetInput{Type: "GOLD", Value: decimal.NewFromInt(1)}, domainerror.ErrInvalidAssetType},
		{"negative value", CreateAssetInput{Type: "CASH", Value: decimal.NewFromInt(-1)}, domainerror.ErrNegativeAmount},
		{"bad date", CreateAssetInput{Type: "CASH", AcquisitionDate: "yesterday"}, domainerror.ErrInvalidHijriDateFormat},
		{"unpriced stock", CreateAssetInput{Kind: "stock", Stock: &StockInput{Symbol: "ZZZ", Shares: decimal.NewFromInt(1)}}, domainerror.ErrPriceUnavailable},
		{"gold without karat", CreateAssetInput{Kind: "precious_metal", Type: "GOLD", Metal: &MetalInput{Weight: decimal.NewFromInt(1)}}, domainerror.ErrInvalidAssetDetails},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.input.UserID = f.user.ID
			_, err := NewCreateAssetUseCase(f.users, f.assets, f.prices, f.calendar).Execute(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateAsset_UnknownUser(t *testing.T) {
	f := newFixture()
	_, err := NewCreateAssetUseCase(f.users, f.assets, f.prices, f.calendar).Execute(context.Background(), CreateAssetInput{
		UserID: uuid.New(),
		Type:   "CASH",
	})
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
}

func TestGetAsset_HidesOtherUsersAssets(t *testing.T) {
	f := newFixture()
	a := f.create(t, CreateAssetInput{Type: "CASH", Value: decimal.NewFromInt(10)})

	_, err := NewGetAssetUseCase(f.assets).Execute(context.Background(), GetAssetInput{UserID: uuid.New(), AssetID: a.ID})
	assert.True(t, domainerror.IsNotFound(err))

	out, err := NewGetAssetUseCase(f.assets).Execute(context.Background(), GetAssetInput{UserID: f.user.ID, AssetID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, a.ID, out.Asset.ID)
}

func TestListAssets_FilterByType(t *testing.T) {
	f := newFixture()
	f.create(t, CreateAssetInput{Type: "CASH", Value: decimal.NewFromInt(10)})
	f.create(t, CreateAssetInput{Type: "BONDS", Value: decimal.NewFromInt(20)})

	uc := NewListAssetsUseCase(f.assets)
	all, err := uc.Execute(context.Background(), ListAssetsInput{UserID: f.user.ID})
	require.NoError(t, err)
	assert.Len(t, all.Assets, 2)

	bonds, err := uc.Execute(context.Background(), ListAssetsInput{UserID: f.user.ID, Type: "bonds"})
	require.NoError(t, err)
	require.Len(t, bonds.Assets, 1)
	assert.Equal(t, valueobject.AssetTypeBonds, bonds.Assets[0].Type)

	_, err = uc.Execute(context.Background(), ListAssetsInput{UserID: f.user.ID, Type: "ART"})
	assert.ErrorIs(t, err, domainerror.ErrInvalidAssetType)
}

func TestUpdateAssetValue_KindAware(t *testing.T) {
	f := newFixture()
	uc := NewUpdateAssetValueUseCase(f.assets, f.prices)
	ctx := context.Background()

	cash := f.create(t, CreateAssetInput{Type: "CASH", Value: decimal.NewFromInt(10)})
	out, err := uc.Execute(ctx, UpdateAssetValueInput{UserID: f.user.ID, AssetID: cash.ID, Value: dec("55")})
	require.NoError(t, err)
	assert.Equal(t, "USD 55.00", out.Asset.CurrentValue().String())

	stock := f.create(t, CreateAssetInput{Kind: "stock", Stock: &StockInput{Symbol: "AAPL", Shares: decimal.NewFromInt(1), PricePerShare: dec("100")}})
	_, err = uc.Execute(ctx, UpdateAssetValueInput{UserID: f.user.ID, AssetID: stock.ID, Value: dec("1")})
	assert.ErrorIs(t, err, domainerror.ErrMissingFields)

	out, err = uc.Execute(ctx, UpdateAssetValueInput{UserID: f.user.ID, AssetID: stock.ID, Shares: dec("4"), UseMarketPrice: true})
	require.NoError(t, err)
	assert.Equal(t, "USD 800.00", out.Asset.CurrentValue().String())

	gold := f.create(t, CreateAssetInput{Kind: "precious_metal", Type: "GOLD", Metal: &MetalInput{Weight: decimal.NewFromInt(2), Karat: 24, PricePerGram: dec("50")}})
	out, err = uc.Execute(ctx, UpdateAssetValueInput{UserID: f.user.ID, AssetID: gold.ID, UseMarketPrice: true})
	require.NoError(t, err)
	assert.Equal(t, "USD 140.00", out.Asset.CurrentValue().String())

	house := f.create(t, CreateAssetInput{Kind: "property", Property: &PropertyInput{Appraisal: decimal.NewFromInt(100)}})
	valued := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	out, err = uc.Execute(ctx, UpdateAssetValueInput{UserID: f.user.ID, AssetID: house.ID, Value: dec("120"), ValuedAt: &valued})
	require.NoError(t, err)
	assert.Equal(t, "USD 120.00", out.Asset.CurrentValue().String())
	assert.True(t, out.Asset.NeedsRevaluation(time.Now()))

	assert.Equal(t, 4, f.assets.Updates)
}

func TestMarkAssetZakatPaid(t *testing.T) {
	f := newFixture()
	a := f.create(t, CreateAssetInput{Type: "CASH", Value: decimal.NewFromInt(1000), AcquisitionDate: "1445-01-01H"})
	uc := NewMarkAssetZakatPaidUseCase(f.assets, f.calendar)

	out, err := uc.Execute(context.Background(), MarkAssetZakatPaidInput{UserID: f.user.ID, AssetID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, 1446, out.Payment.HijriYear)
	assert.Equal(t, "USD 25.00", out.Payment.Amount.String())
	assert.True(t, a.HasPaidZakatFor(1446))

	_, err = uc.Execute(context.Background(), MarkAssetZakatPaidInput{UserID: f.user.ID, AssetID: a.ID})
	assert.ErrorIs(t, err, domainerror.ErrZakatAlreadyPaid)

	_, err = NewResetAssetZakatPaymentUseCase(f.assets).Execute(context.Background(), ResetAssetZakatPaymentInput{
		UserID: f.user.ID, AssetID: a.ID, HijriYear: 1446,
	})
	require.NoError(t, err)
	assert.False(t, a.HasPaidZakatFor(1446))

	_, err = NewResetAssetZakatPaymentUseCase(f.assets).Execute(context.Background(), ResetAssetZakatPaymentInput{
		UserID: f.user.ID, AssetID: a.ID, HijriYear: 1446,
	})
	assert.ErrorIs(t, err, domainerror.ErrZakatPaymentNotFound)
}

func TestDeleteAsset_RemovesReminders(t *testing.T) {
	f := newFixture()
	a := f.create(t, CreateAssetInput{Type: "CASH", Value: decimal.NewFromInt(10)})
	require.NoError(t, f.reminders.Create(context.Background(),
		entity.NewReminder(f.user.ID, &a.ID, entity.ReminderTypeHawlCompletion, today, "hawl")))

	err := NewDeleteAssetUseCase(f.assets, f.reminders).Execute(context.Background(), DeleteAssetInput{UserID: f.user.ID, AssetID: a.ID})
	require.NoError(t, err)
	assert.Empty(t, f.reminders.All())

	_, err = f.assets.FindByID(context.Background(), a.ID)
	assert.ErrorIs(t, err, domainerror.ErrAssetNotFound)
}

func TestRefreshMarketPrices_ContinuesOnFailure(t *testing.T) {
	f := newFixture()
	f.create(t, CreateAssetInput{Kind: "stock", Stock: &StockInput{Symbol: "AAPL", Shares: decimal.NewFromInt(1), PricePerShare: dec("1")}})
	f.create(t, CreateAssetInput{Kind: "stock", Stock: &StockInput{Symbol: "DELISTED", Shares: decimal.NewFromInt(1), PricePerShare: dec("1")}})
	gold := f.create(t, CreateAssetInput{Kind: "precious_metal", Type: "GOLD", Metal: &MetalInput{Weight: decimal.NewFromInt(1), Karat: 24, PricePerGram: dec("1")}})
	f.create(t, CreateAssetInput{Type: "CASH", Value: decimal.NewFromInt(10)})

	out, err := NewRefreshMarketPricesUseCase(f.assets, f.prices).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, out.Processed)
	assert.Equal(t, 2, out.Updated)
	assert.Equal(t, 1, out.Failed)
	assert.Equal(t, "USD 70.00", gold.CurrentValue().String())
}
