package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

func money(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoney(decimal.RequireFromString(amount), "USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func cashAsset(t *testing.T, amount string, acquired valueobject.HijriDate) *Asset {
	t.Helper()
	a, err := NewMoneyAsset(uuid.New(), valueobject.AssetTypeCash, money(t, amount), acquired, "savings")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return a
}

func TestNewMoneyAsset_RejectsNonMonetaryTypes(t *testing.T) {
	acquired := valueobject.MustHijriDate(1445, 1, 1)

	for _, at := range []valueobject.AssetType{valueobject.AssetTypeGold, valueobject.AssetTypeStocks, valueobject.AssetTypeInvestmentRealEstate} {
		_, err := NewMoneyAsset(uuid.New(), at, money(t, "1"), acquired, "x")
		if !errors.Is(err, domainerror.ErrInvalidAssetType) {
			t.Errorf("%s: expected ErrInvalidAssetType, got %v", at, err)
		}
	}

	a, err := NewMoneyAsset(uuid.New(), valueobject.AssetTypeReceivableDebts, money(t, "500"), acquired, "loan to a friend")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Kind != AssetKindMoney || !a.CurrentValue().Equals(money(t, "500")) {
		t.Errorf("unexpected asset: kind=%s value=%s", a.Kind, a.CurrentValue())
	}
}

func TestAsset_HawlCompletion(t *testing.T) {
	today := valueobject.MustHijriDate(1445, 6, 15)
	a := cashAsset(t, "1000", today)

	oneYearLater, _ := today.AddLunarYear(1)
	dayBefore := valueobject.MustHijriDate(1446, 6, 14)

	if !a.HawlCompletionDate().Equals(oneYearLater) {
		t.Errorf("expected hawl completion %s, got %s", oneYearLater, a.HawlCompletionDate())
	}
	if !a.HasCompletedHawl(oneYearLater) {
		t.Error("expected hawl to be complete one lunar year later")
	}
	if a.HasCompletedHawl(dayBefore) {
		t.Error("expected hawl to be incomplete one day before completion")
	}
}

func TestAsset_MarkZakatAsPaid(t *testing.T) {
	a := cashAsset(t, "1000", valueobject.MustHijriDate(1440, 1, 1))
	paidAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := a.MarkZakatAsPaid(1445, money(t, "25"), paidAt); err != nil {
		t.Fatalf("first payment: unexpected error: %v", err)
	}
	err := a.MarkZakatAsPaid(1445, money(t, "25"), paidAt)
	if !errors.Is(err, domainerror.ErrZakatAlreadyPaid) {
		t.Fatalf("expected ErrZakatAlreadyPaid, got %v", err)
	}
	if !domainerror.IsInvariantViolation(err) {
		t.Errorf("expected invariant violation, got %v", err)
	}
	if err := a.MarkZakatAsPaid(1446, money(t, "30"), paidAt); err != nil {
		t.Fatalf("second year: unexpected error: %v", err)
	}

	history := a.ZakatPaymentHistory()
	if len(history) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(history))
	}
	if history[0].HijriYear != 1445 || history[1].HijriYear != 1446 {
		t.Errorf("unexpected order: %+v", history)
	}

	history[0].HijriYear = 1
	if !a.HasPaidZakatFor(1445) {
		t.Error("history must be returned as a copy")
	}
}

func TestAsset_MarkZakatAsPaid_RejectsOtherCurrency(t *testing.T) {
	a := cashAsset(t, "1000", valueobject.MustHijriDate(1440, 1, 1))
	eur, err := valueobject.NewMoney(decimal.RequireFromString("25"), "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = a.MarkZakatAsPaid(1445, eur, time.Now())
	if !errors.Is(err, domainerror.ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}
	if a.HasPaidZakatFor(1445) {
		t.Error("a rejected payment must not be recorded")
	}
}

func TestAsset_ResetZakatPayment(t *testing.T) {
	a := cashAsset(t, "1000", valueobject.MustHijriDate(1440, 1, 1))
	_ = a.MarkZakatAsPaid(1445, money(t, "25"), time.Now())
	_ = a.MarkZakatAsPaid(1446, money(t, "25"), time.Now())

	if err := a.ResetZakatPayment(1445); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.HasPaidZakatFor(1445) || !a.HasPaidZakatFor(1446) {
		t.Error("reset must only remove the requested year")
	}
	if err := a.ResetZakatPayment(1445); !errors.Is(err, domainerror.ErrZakatPaymentNotFound) {
		t.Errorf("expected ErrZakatPaymentNotFound, got %v", err)
	}
}

func TestAsset_Eligibility(t *testing.T) {
	a := cashAsset(t, "1000", valueobject.MustHijriDate(1444, 1, 1))
	current := valueobject.MustHijriDate(1445, 6, 1)

	if !a.IsZakatableForYear(1445, current) {
		t.Error("expected asset to be zakatable for 1445")
	}
	if !a.IsCurrentlyZakatable(current) {
		t.Error("expected asset to be currently zakatable")
	}

	_ = a.MarkZakatAsPaid(1445, money(t, "25"), time.Now())
	if a.IsZakatableForYear(1445, current) || a.IsCurrentlyZakatable(current) {
		t.Error("a paid year must not be zakatable")
	}

	young := cashAsset(t, "1000", valueobject.MustHijriDate(1445, 1, 1))
	if young.IsZakatableForYear(1445, current) {
		t.Error("hawl incomplete assets must not be zakatable for the year")
	}
}

func TestStockAsset_Valuation(t *testing.T) {
	a, err := NewStockAsset(uuid.New(), StockDetails{
		Symbol:        "AAPL",
		Shares:        decimal.NewFromInt(10),
		PricePerShare: money(t, "150"),
	}, valueobject.MustHijriDate(1445, 1, 1), "tech")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.CurrentValue().Equals(money(t, "1500")) {
		t.Errorf("expected USD 1500.00, got %s", a.CurrentValue())
	}

	if err := a.UpdateShares(decimal.NewFromInt(12)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.UpdatePricePerShare(money(t, "100")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.CurrentValue().Equals(money(t, "1200")) {
		t.Errorf("expected USD 1200.00, got %s", a.CurrentValue())
	}

	if err := a.UpdateValue(money(t, "1")); !errors.Is(err, domainerror.ErrDerivedValue) {
		t.Errorf("expected ErrDerivedValue, got %v", err)
	}
}

func TestPreciousMetalAsset_Validation(t *testing.T) {
	acquired := valueobject.MustHijriDate(1445, 1, 1)
	price := money(t, "60")

	tests := []struct {
		name    string
		metal   valueobject.AssetType
		details MetalDetails
		wantErr bool
	}{
		{name: "gold with karat", metal: valueobject.AssetTypeGold, details: MetalDetails{Weight: decimal.NewFromInt(100), Unit: WeightUnitGrams, Karat: 24, PricePerGram: price}},
		{name: "gold without karat", metal: valueobject.AssetTypeGold, details: MetalDetails{Weight: decimal.NewFromInt(100), Unit: WeightUnitGrams, PricePerGram: price}, wantErr: true},
		{name: "gold karat 25", metal: valueobject.AssetTypeGold, details: MetalDetails{Weight: decimal.NewFromInt(1), Unit: WeightUnitGrams, Karat: 25, PricePerGram: price}, wantErr: true},
		{name: "gold with purity", metal: valueobject.AssetTypeGold, details: MetalDetails{Weight: decimal.NewFromInt(1), Unit: WeightUnitGrams, Karat: 21, SilverPurity: decimal.NewFromInt(925), PricePerGram: price}, wantErr: true},
		{name: "silver with purity", metal: valueobject.AssetTypeSilver, details: MetalDetails{Weight: decimal.NewFromInt(1), Unit: WeightUnitOunces, SilverPurity: decimal.NewFromInt(925), PricePerGram: price}},
		{name: "silver purity above 1000", metal: valueobject.AssetTypeSilver, details: MetalDetails{Weight: decimal.NewFromInt(1), Unit: WeightUnitGrams, SilverPurity: decimal.NewFromInt(1001), PricePerGram: price}, wantErr: true},
		{name: "silver with karat", metal: valueobject.AssetTypeSilver, details: MetalDetails{Weight: decimal.NewFromInt(1), Unit: WeightUnitGrams, Karat: 18, SilverPurity: decimal.NewFromInt(925), PricePerGram: price}, wantErr: true},
		{name: "cash is not a metal", metal: valueobject.AssetTypeCash, details: MetalDetails{Weight: decimal.NewFromInt(1), Unit: WeightUnitGrams, Karat: 24, PricePerGram: price}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPreciousMetalAsset(uuid.New(), tt.metal, tt.details, acquired, "jewelry")
			if tt.wantErr && !domainerror.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestPreciousMetalAsset_UpdateValueFromMarketPrice(t *testing.T) {
	a, err := NewPreciousMetalAsset(uuid.New(), valueobject.AssetTypeGold, MetalDetails{
		Weight:       decimal.NewFromInt(100),
		Unit:         WeightUnitGrams,
		Karat:        24,
		PricePerGram: money(t, "50"),
	}, valueobject.MustHijriDate(1445, 1, 1), "bars")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := a.UpdateValueFromMarketPrice(money(t, "60")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.CurrentValue().Equals(money(t, "6000")) {
		t.Errorf("expected USD 6000.00, got %s", a.CurrentValue())
	}

	ounces, err := NewPreciousMetalAsset(uuid.New(), valueobject.AssetTypeSilver, MetalDetails{
		Weight:       decimal.NewFromInt(2),
		Unit:         WeightUnitOunces,
		SilverPurity: decimal.NewFromInt(999),
		PricePerGram: money(t, "1"),
	}, valueobject.MustHijriDate(1445, 1, 1), "coins")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ounces.CurrentValue().Equals(money(t, "56.699")) {
		t.Errorf("expected USD 56.699, got %s", ounces.CurrentValue().Amount())
	}
}

func TestPropertyAsset_Revaluation(t *testing.T) {
	valued := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	a, err := NewPropertyAsset(uuid.New(), PropertyDetails{
		Address:           "12 Market St",
		Appraisal:         money(t, "250000"),
		LastValuationDate: valued,
	}, valueobject.MustHijriDate(1444, 1, 1), "rental flat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.NeedsRevaluation(valued.AddDate(0, 6, 0)) {
		t.Error("appraisal six months old must not need revaluation")
	}
	stale := valued.AddDate(1, 0, 2)
	if !a.NeedsRevaluation(stale) {
		t.Error("appraisal older than a year must need revaluation")
	}
	if !a.CurrentValue().Equals(money(t, "250000")) {
		t.Error("staleness must not change the value")
	}

	if err := a.Revalue(money(t, "270000"), stale); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.CurrentValue().Equals(money(t, "270000")) || a.NeedsRevaluation(stale) {
		t.Errorf("unexpected state after revaluation: %s", a.CurrentValue())
	}
}

func TestAsset_UpdateValueCurrencyMismatch(t *testing.T) {
	a := cashAsset(t, "100", valueobject.MustHijriDate(1445, 1, 1))
	eur, _ := valueobject.NewMoney(decimal.NewFromInt(1), "EUR")

	if err := a.UpdateValue(eur); !errors.Is(err, domainerror.ErrCurrencyMismatch) {
		t.Errorf("expected ErrCurrencyMismatch, got %v", err)
	}
	if err := a.UpdateValue(money(t, "150")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.CurrentValue().Equals(money(t, "150")) {
		t.Errorf("expected USD 150.00, got %s", a.CurrentValue())
	}
}

func TestRestoreAsset(t *testing.T) {
	a := cashAsset(t, "100", valueobject.MustHijriDate(1440, 1, 1))
	_ = a.MarkZakatAsPaid(1444, money(t, "2.5"), time.Now())

	restored, err := RestoreAsset(a.Snapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.ID != a.ID || !restored.CurrentValue().Equals(a.CurrentValue()) || !restored.HasPaidZakatFor(1444) {
		t.Errorf("restored asset differs: %+v", restored.Snapshot())
	}

	snapshot := a.Snapshot()
	snapshot.Payments = append(snapshot.Payments, snapshot.Payments[0])
	if _, err := RestoreAsset(snapshot); !errors.Is(err, domainerror.ErrZakatAlreadyPaid) {
		t.Errorf("expected ErrZakatAlreadyPaid for duplicate years, got %v", err)
	}
}
