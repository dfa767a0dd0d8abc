// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// RevaluationPeriod is the age after which a property appraisal is considered stale.
const RevaluationPeriod = 365 * 24 * time.Hour

// GramsPerOunce converts ounce weights into grams.
var GramsPerOunce = decimal.RequireFromString("28.3495")

var maxSilverPurity = decimal.NewFromInt(1000)

// ZakatRatePercent is the share of zakatable wealth due each lunar year.
var ZakatRatePercent = decimal.RequireFromString("2.5")

// AssetKind selects the valuation rules of an asset.
type AssetKind string

const (
	AssetKindMoney         AssetKind = "money"
	AssetKindStock         AssetKind = "stock"
	AssetKindPreciousMetal AssetKind = "precious_metal"
	AssetKindProperty      AssetKind = "property"
)

// IsValid reports whether k is a known kind.
func (k AssetKind) IsValid() bool {
	_, ok := kindRules[k]
	return ok
}

// WeightUnit is the unit a precious metal weight was recorded in.
type WeightUnit string

const (
	WeightUnitGrams  WeightUnit = "grams"
	WeightUnitOunces WeightUnit = "ounces"
)

// moneyAssetTypes are the asset types a plain monetary asset may carry.
var moneyAssetTypes = map[valueobject.AssetType]bool{
	valueobject.AssetTypeCash:              true,
	valueobject.AssetTypeBonds:             true,
	valueobject.AssetTypeMutualFunds:       true,
	valueobject.AssetTypeBusinessInventory: true,
	valueobject.AssetTypeBusinessAssets:    true,
	valueobject.AssetTypeReceivableDebts:   true,
}

// StockDetails holds the position behind a stock asset.
type StockDetails struct {
	Symbol        string
	Shares        decimal.Decimal
	PricePerShare valueobject.Money
}

// MetalDetails holds the weight and fineness of a gold or silver holding.
// Gold carries Karat, silver carries SilverPurity (parts per thousand).
type MetalDetails struct {
	Weight       decimal.Decimal
	Unit         WeightUnit
	Karat        int
	SilverPurity decimal.Decimal
	PricePerGram valueobject.Money
}

// WeightInGrams normalizes the recorded weight to grams.
func (d MetalDetails) WeightInGrams() decimal.Decimal {
	if d.Unit == WeightUnitOunces {
		return d.Weight.Mul(GramsPerOunce)
	}
	return d.Weight
}

// PropertyDetails holds the last appraisal of an investment property.
type PropertyDetails struct {
	Address           string
	Appraisal         valueobject.Money
	LastValuationDate time.Time
}

// ZakatPayment records zakat paid on an asset for one Hijri year.
type ZakatPayment struct {
	HijriYear int
	PaidDate  time.Time
	Amount    valueobject.Money
}

// Asset is a zakatable holding owned by one user. The Kind selects which
// detail record is populated and how the current value is derived.
type Asset struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Kind            AssetKind
	Type            valueobject.AssetType
	AcquisitionDate valueobject.HijriDate
	Description     string
	CreatedAt       time.Time

	currentValue valueobject.Money
	lastUpdated  time.Time
	payments     []ZakatPayment

	stock    *StockDetails
	metal    *MetalDetails
	property *PropertyDetails
}

// kindRule bundles the per-kind behavior of an asset.
type kindRule struct {
	// validate checks the kind-specific construction invariants.
	validate func(a *Asset) error
	// valuate derives the current value from the kind-specific fields.
	valuate func(a *Asset) (valueobject.Money, error)
	// setValue applies a direct value update, or rejects it for derived kinds.
	setValue func(a *Asset, value valueobject.Money, at time.Time) error
}

var kindRules map[AssetKind]kindRule

func init() {
	kindRules = map[AssetKind]kindRule{
		AssetKindMoney: {
			validate: validateMoneyAsset,
			valuate:  func(a *Asset) (valueobject.Money, error) { return a.currentValue, nil },
			setValue: func(a *Asset, value valueobject.Money, _ time.Time) error {
				a.currentValue = value
				return nil
			},
		},
		AssetKindStock: {
			validate: validateStockAsset,
			valuate: func(a *Asset) (valueobject.Money, error) {
				return a.stock.PricePerShare.Multiply(a.stock.Shares)
			},
			setValue: rejectDerivedValue,
		},
		AssetKindPreciousMetal: {
			validate: validateMetalAsset,
			valuate: func(a *Asset) (valueobject.Money, error) {
				return a.metal.PricePerGram.Multiply(a.metal.WeightInGrams())
			},
			setValue: rejectDerivedValue,
		},
		AssetKindProperty: {
			validate: validatePropertyAsset,
			valuate:  func(a *Asset) (valueobject.Money, error) { return a.property.Appraisal, nil },
			setValue: func(a *Asset, value valueobject.Money, at time.Time) error {
				a.property.Appraisal = value
				a.property.LastValuationDate = at
				return nil
			},
		},
	}
}

// NewMoneyAsset creates a cash-like asset whose value is stored as given.
func NewMoneyAsset(userID uuid.UUID, assetType valueobject.AssetType, value valueobject.Money, acquired valueobject.HijriDate, description string) (*Asset, error) {
	a := newAsset(userID, AssetKindMoney, assetType, acquired, description)
	a.currentValue = value
	return a.finish()
}

// NewStockAsset creates a stock position valued at shares x price per share.
func NewStockAsset(userID uuid.UUID, details StockDetails, acquired valueobject.HijriDate, description string) (*Asset, error) {
	a := newAsset(userID, AssetKindStock, valueobject.AssetTypeStocks, acquired, description)
	a.stock = &details
	return a.finish()
}

// NewPreciousMetalAsset creates a gold or silver holding valued at grams x price per gram.
func NewPreciousMetalAsset(userID uuid.UUID, metal valueobject.AssetType, details MetalDetails, acquired valueobject.HijriDate, description string) (*Asset, error) {
	a := newAsset(userID, AssetKindPreciousMetal, metal, acquired, description)
	a.metal = &details
	return a.finish()
}

// NewPropertyAsset creates an investment property valued at its last appraisal.
func NewPropertyAsset(userID uuid.UUID, details PropertyDetails, acquired valueobject.HijriDate, description string) (*Asset, error) {
	a := newAsset(userID, AssetKindProperty, valueobject.AssetTypeInvestmentRealEstate, acquired, description)
	a.property = &details
	return a.finish()
}

func newAsset(userID uuid.UUID, kind AssetKind, assetType valueobject.AssetType, acquired valueobject.HijriDate, description string) *Asset {
	now := time.Now().UTC()
	return &Asset{
		ID:              uuid.New(),
		UserID:          userID,
		Kind:            kind,
		Type:            assetType,
		AcquisitionDate: acquired,
		Description:     description,
		CreatedAt:       now,
		lastUpdated:     now,
	}
}

func (a *Asset) finish() (*Asset, error) {
	rule, ok := kindRules[a.Kind]
	if !ok {
		return nil, invalidDetails(fmt.Sprintf("unknown asset kind %q", a.Kind))
	}
	if a.AcquisitionDate.IsZero() {
		return nil, invalidDetails("acquisition date is required")
	}
	if err := rule.validate(a); err != nil {
		return nil, err
	}
	value, err := rule.valuate(a)
	if err != nil {
		return nil, err
	}
	a.currentValue = value
	return a, nil
}

// CurrentValue returns the latest valuation.
func (a *Asset) CurrentValue() valueobject.Money {
	return a.currentValue
}

// Currency returns the currency the asset is valued in.
func (a *Asset) Currency() valueobject.Currency {
	return a.currentValue.Currency()
}

// LastUpdated returns when the value last changed.
func (a *Asset) LastUpdated() time.Time {
	return a.lastUpdated
}

// Stock returns a copy of the stock details, or nil for other kinds.
func (a *Asset) Stock() *StockDetails {
	if a.stock == nil {
		return nil
	}
	d := *a.stock
	return &d
}

// Metal returns a copy of the metal details, or nil for other kinds.
func (a *Asset) Metal() *MetalDetails {
	if a.metal == nil {
		return nil
	}
	d := *a.metal
	return &d
}

// Property returns a copy of the property details, or nil for other kinds.
func (a *Asset) Property() *PropertyDetails {
	if a.property == nil {
		return nil
	}
	d := *a.property
	return &d
}

// UpdateValue sets the value directly. Only money and property assets
// accept it; stock and metal values are derived and return ErrDerivedValue.
func (a *Asset) UpdateValue(value valueobject.Money) error {
	if err := a.sameCurrency(value); err != nil {
		return err
	}
	now := time.Now().UTC()
	if err := kindRules[a.Kind].setValue(a, value, now); err != nil {
		return err
	}
	return a.revalue(now)
}

// UpdateShares changes the share count of a stock asset.
func (a *Asset) UpdateShares(shares decimal.Decimal) error {
	if a.stock == nil {
		return wrongKind("update shares", a.Kind)
	}
	if shares.IsNegative() {
		return invalidDetails("shares cannot be negative")
	}
	a.stock.Shares = shares
	return a.revalue(time.Now().UTC())
}

// UpdatePricePerShare changes the unit price of a stock asset.
func (a *Asset) UpdatePricePerShare(price valueobject.Money) error {
	if a.stock == nil {
		return wrongKind("update price per share", a.Kind)
	}
	if err := a.sameCurrency(price); err != nil {
		return err
	}
	a.stock.PricePerShare = price
	return a.revalue(time.Now().UTC())
}

// UpdateValueFromMarketPrice reweighs a precious metal asset at a new price per gram.
func (a *Asset) UpdateValueFromMarketPrice(pricePerGram valueobject.Money) error {
	if a.metal == nil {
		return wrongKind("update from market price", a.Kind)
	}
	if err := a.sameCurrency(pricePerGram); err != nil {
		return err
	}
	a.metal.PricePerGram = pricePerGram
	return a.revalue(time.Now().UTC())
}

// Revalue records a new appraisal for a property asset.
func (a *Asset) Revalue(appraisal valueobject.Money, valuedAt time.Time) error {
	if a.property == nil {
		return wrongKind("revalue", a.Kind)
	}
	if err := a.sameCurrency(appraisal); err != nil {
		return err
	}
	a.property.Appraisal = appraisal
	a.property.LastValuationDate = valuedAt
	return a.revalue(time.Now().UTC())
}

// NeedsRevaluation reports whether a property appraisal is older than
// RevaluationPeriod. It is advisory only and always false for other kinds.
func (a *Asset) NeedsRevaluation(now time.Time) bool {
	if a.property == nil {
		return false
	}
	return now.Sub(a.property.LastValuationDate) > RevaluationPeriod
}

func (a *Asset) revalue(at time.Time) error {
	value, err := kindRules[a.Kind].valuate(a)
	if err != nil {
		return err
	}
	a.currentValue = value
	a.lastUpdated = at
	return nil
}

// ZakatAmount returns 2.5% of the current value.
func (a *Asset) ZakatAmount() (valueobject.Money, error) {
	return a.currentValue.Percentage(ZakatRatePercent)
}

// HawlCompletionDate is the acquisition date plus one lunar year.
func (a *Asset) HawlCompletionDate() valueobject.HijriDate {
	// Adding a year to a valid date cannot leave the valid range.
	d, _ := a.AcquisitionDate.AddLunarYear(1)
	return d
}

// HasCompletedHawl reports whether current is on or after the hawl completion date.
func (a *Asset) HasCompletedHawl(current valueobject.HijriDate) bool {
	return current.IsAfterOrEqual(a.HawlCompletionDate())
}

// HasPaidZakatFor reports whether a payment exists for the Hijri year.
func (a *Asset) HasPaidZakatFor(hijriYear int) bool {
	for _, p := range a.payments {
		if p.HijriYear == hijriYear {
			return true
		}
	}
	return false
}

// IsZakatableForYear reports whether zakat is owed on the asset for hijriYear.
func (a *Asset) IsZakatableForYear(hijriYear int, current valueobject.HijriDate) bool {
	return a.Type.IsZakatable() && a.HasCompletedHawl(current) && !a.HasPaidZakatFor(hijriYear)
}

// IsCurrentlyZakatable reports whether the asset type is zakatable and no
// payment has been recorded for the current Hijri year. Hawl is checked separately.
func (a *Asset) IsCurrentlyZakatable(current valueobject.HijriDate) bool {
	return a.Type.IsZakatable() && !a.HasPaidZakatFor(current.Year())
}

// MarkZakatAsPaid records a payment for hijriYear in the asset's currency.
// A second payment for the same year fails with ErrZakatAlreadyPaid.
func (a *Asset) MarkZakatAsPaid(hijriYear int, amount valueobject.Money, paidDate time.Time) error {
	if err := a.sameCurrency(amount); err != nil {
		return err
	}
	if a.HasPaidZakatFor(hijriYear) {
		return domainerror.NewZakatError(
			domainerror.ErrCodeZakatAlreadyPaid,
			fmt.Sprintf("zakat for %dH already recorded on asset %s", hijriYear, a.ID),
			domainerror.ErrZakatAlreadyPaid,
		)
	}
	a.payments = append(a.payments, ZakatPayment{HijriYear: hijriYear, PaidDate: paidDate, Amount: amount})
	return nil
}

// ResetZakatPayment removes the payment recorded for hijriYear.
func (a *Asset) ResetZakatPayment(hijriYear int) error {
	for i, p := range a.payments {
		if p.HijriYear == hijriYear {
			a.payments = append(a.payments[:i:i], a.payments[i+1:]...)
			return nil
		}
	}
	return domainerror.NewZakatError(
		domainerror.ErrCodeZakatPaymentNotFound,
		fmt.Sprintf("no zakat payment for %dH on asset %s", hijriYear, a.ID),
		domainerror.ErrZakatPaymentNotFound,
	)
}

// ZakatPaymentHistory returns the payments in the order they were recorded.
func (a *Asset) ZakatPaymentHistory() []ZakatPayment {
	out := make([]ZakatPayment, len(a.payments))
	copy(out, a.payments)
	return out
}

// AssetSnapshot is the flat state of an asset, used to persist and rehydrate it.
type AssetSnapshot struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Kind            AssetKind
	Type            valueobject.AssetType
	CurrentValue    valueobject.Money
	AcquisitionDate valueobject.HijriDate
	Description     string
	CreatedAt       time.Time
	LastUpdated     time.Time
	Payments        []ZakatPayment
	Stock           *StockDetails
	Metal           *MetalDetails
	Property        *PropertyDetails
}

// Snapshot captures the asset state.
func (a *Asset) Snapshot() AssetSnapshot {
	return AssetSnapshot{
		ID:              a.ID,
		UserID:          a.UserID,
		Kind:            a.Kind,
		Type:            a.Type,
		CurrentValue:    a.currentValue,
		AcquisitionDate: a.AcquisitionDate,
		Description:     a.Description,
		CreatedAt:       a.CreatedAt,
		LastUpdated:     a.lastUpdated,
		Payments:        a.ZakatPaymentHistory(),
		Stock:           a.Stock(),
		Metal:           a.Metal(),
		Property:        a.Property(),
	}
}

// RestoreAsset rebuilds an asset from a snapshot, re-checking the kind
// invariants and the one-payment-per-year rule.
func RestoreAsset(s AssetSnapshot) (*Asset, error) {
	a := &Asset{
		ID:              s.ID,
		UserID:          s.UserID,
		Kind:            s.Kind,
		Type:            s.Type,
		AcquisitionDate: s.AcquisitionDate,
		Description:     s.Description,
		CreatedAt:       s.CreatedAt,
		currentValue:    s.CurrentValue,
		stock:           s.Stock,
		metal:           s.Metal,
		property:        s.Property,
	}
	if _, err := a.finish(); err != nil {
		return nil, err
	}
	for _, p := range s.Payments {
		if err := a.MarkZakatAsPaid(p.HijriYear, p.Amount, p.PaidDate); err != nil {
			return nil, err
		}
	}
	a.lastUpdated = s.LastUpdated
	return a, nil
}

func validateMoneyAsset(a *Asset) error {
	if !moneyAssetTypes[a.Type] {
		return domainerror.NewZakatError(
			domainerror.ErrCodeInvalidAssetType,
			fmt.Sprintf("asset type %s cannot be held as a money asset", a.Type),
			domainerror.ErrInvalidAssetType,
		)
	}
	if a.currentValue.Currency().IsZero() {
		return invalidDetails("money asset requires a value")
	}
	return nil
}

func validateStockAsset(a *Asset) error {
	if a.stock == nil {
		return invalidDetails("stock details are required")
	}
	if a.stock.Symbol == "" {
		return invalidDetails("stock symbol is required")
	}
	if a.stock.Shares.IsNegative() {
		return invalidDetails("shares cannot be negative")
	}
	if a.stock.PricePerShare.Currency().IsZero() {
		return invalidDetails("price per share is required")
	}
	return nil
}

func validateMetalAsset(a *Asset) error {
	d := a.metal
	if d == nil {
		return invalidDetails("metal details are required")
	}
	if !d.Weight.IsPositive() {
		return invalidDetails("metal weight must be positive")
	}
	if d.Unit != WeightUnitGrams && d.Unit != WeightUnitOunces {
		return invalidDetails(fmt.Sprintf("unknown weight unit %q", d.Unit))
	}
	if d.PricePerGram.Currency().IsZero() {
		return invalidDetails("price per gram is required")
	}
	switch a.Type {
	case valueobject.AssetTypeGold:
		if d.Karat < 1 || d.Karat > 24 {
			return invalidDetails("gold requires a karat between 1 and 24")
		}
		if !d.SilverPurity.IsZero() {
			return invalidDetails("gold cannot carry a silver purity")
		}
	case valueobject.AssetTypeSilver:
		if !d.SilverPurity.IsPositive() || d.SilverPurity.GreaterThan(maxSilverPurity) {
			return invalidDetails("silver requires a purity between 0 and 1000")
		}
		if d.Karat != 0 {
			return invalidDetails("silver cannot carry a karat")
		}
	default:
		return domainerror.NewZakatError(
			domainerror.ErrCodeInvalidAssetType,
			fmt.Sprintf("asset type %s is not a precious metal", a.Type),
			domainerror.ErrInvalidAssetType,
		)
	}
	return nil
}

func validatePropertyAsset(a *Asset) error {
	if a.property == nil {
		return invalidDetails("property details are required")
	}
	if a.property.Appraisal.Currency().IsZero() {
		return invalidDetails("property appraisal is required")
	}
	if a.property.LastValuationDate.IsZero() {
		return invalidDetails("property valuation date is required")
	}
	return nil
}

func rejectDerivedValue(a *Asset, _ valueobject.Money, _ time.Time) error {
	return domainerror.NewZakatError(
		domainerror.ErrCodeDerivedValue,
		fmt.Sprintf("%s asset value is derived and cannot be set directly", a.Kind),
		domainerror.ErrDerivedValue,
	)
}

func (a *Asset) sameCurrency(m valueobject.Money) error {
	if !a.currentValue.Currency().Equals(m.Currency()) {
		return domainerror.NewZakatError(
			domainerror.ErrCodeCurrencyMismatch,
			fmt.Sprintf("asset is valued in %s, got %s", a.currentValue.Currency(), m.Currency()),
			domainerror.ErrCurrencyMismatch,
		)
	}
	return nil
}

func wrongKind(op string, kind AssetKind) error {
	return invalidDetails(fmt.Sprintf("cannot %s on a %s asset", op, kind))
}

func invalidDetails(message string) error {
	return domainerror.NewZakatError(domainerror.ErrCodeInvalidAssetDetails, message, domainerror.ErrInvalidAssetDetails)
}
