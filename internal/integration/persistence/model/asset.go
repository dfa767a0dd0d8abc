package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-calculator/backend/internal/domain/entity"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// AssetModel represents the assets table. Kind-specific columns are null
// for the other kinds.
type AssetModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind           string          `gorm:"type:varchar(20);not null;index"`
	Type           string          `gorm:"type:varchar(30);not null;index"`
	Currency       string          `gorm:"type:varchar(3);not null"`
	CurrentValue   decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	AcquisitionKey int             `gorm:"not null"`
	Description    string          `gorm:"type:varchar(255)"`
	CreatedAt      time.Time       `gorm:"not null"`
	LastUpdated    time.Time       `gorm:"not null"`

	// Stock
	Symbol        string           `gorm:"type:varchar(20)"`
	Shares        *decimal.Decimal `gorm:"type:decimal(20,6)"`
	PricePerShare *decimal.Decimal `gorm:"type:decimal(20,4)"`

	// Precious metal
	Weight       *decimal.Decimal `gorm:"type:decimal(20,6)"`
	WeightUnit   string           `gorm:"type:varchar(10)"`
	Karat        int              `gorm:"default:0"`
	SilverPurity *decimal.Decimal `gorm:"type:decimal(7,3)"`
	PricePerGram *decimal.Decimal `gorm:"type:decimal(20,4)"`

	// Property
	Address           string           `gorm:"type:varchar(255)"`
	Appraisal         *decimal.Decimal `gorm:"type:decimal(20,4)"`
	LastValuationDate *time.Time

	Payments []ZakatPaymentModel `gorm:"foreignKey:AssetID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the AssetModel.
func (AssetModel) TableName() string {
	return "assets"
}

// ZakatPaymentModel represents one recorded zakat payment for an asset.
type ZakatPaymentModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AssetID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_asset_payment_year"`
	HijriYear int             `gorm:"not null;uniqueIndex:idx_asset_payment_year"`
	PaidDate  time.Time       `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Currency  string          `gorm:"type:varchar(3);not null"`
}

// TableName returns the table name for the ZakatPaymentModel.
func (ZakatPaymentModel) TableName() string {
	return "asset_zakat_payments"
}

// AssetModelFromEntity flattens an asset and its payment history.
func AssetModelFromEntity(a *entity.Asset) *AssetModel {
	s := a.Snapshot()
	m := &AssetModel{
		ID:             s.ID,
		UserID:         s.UserID,
		Kind:           string(s.Kind),
		Type:           string(s.Type),
		Currency:       s.CurrentValue.Currency().Code(),
		CurrentValue:   s.CurrentValue.Amount(),
		AcquisitionKey: HijriKey(s.AcquisitionDate),
		Description:    s.Description,
		CreatedAt:      s.CreatedAt,
		LastUpdated:    s.LastUpdated,
	}

	if st := s.Stock; st != nil {
		shares := st.Shares
		m.Symbol = st.Symbol
		m.Shares = &shares
		m.PricePerShare = amountPtr(st.PricePerShare)
	}
	if mt := s.Metal; mt != nil {
		weight := mt.Weight
		m.Weight = &weight
		m.WeightUnit = string(mt.Unit)
		m.Karat = mt.Karat
		m.PricePerGram = amountPtr(mt.PricePerGram)
		if !mt.SilverPurity.IsZero() {
			purity := mt.SilverPurity
			m.SilverPurity = &purity
		}
	}
	if p := s.Property; p != nil {
		valuedAt := p.LastValuationDate
		m.Address = p.Address
		m.Appraisal = amountPtr(p.Appraisal)
		m.LastValuationDate = &valuedAt
	}

	for _, p := range s.Payments {
		m.Payments = append(m.Payments, ZakatPaymentModel{
			ID:        uuid.New(),
			AssetID:   s.ID,
			HijriYear: p.HijriYear,
			PaidDate:  p.PaidDate,
			Amount:    p.Amount.Amount(),
			Currency:  p.Amount.Currency().Code(),
		})
	}
	return m
}

// ToEntity rehydrates the asset. Domain invariants are re-checked.
func (m *AssetModel) ToEntity() (*entity.Asset, error) {
	value, err := money(m.CurrentValue, m.Currency)
	if err != nil {
		return nil, err
	}
	acquired, err := HijriFromKey(m.AcquisitionKey)
	if err != nil {
		return nil, err
	}

	s := entity.AssetSnapshot{
		ID:              m.ID,
		UserID:          m.UserID,
		Kind:            entity.AssetKind(m.Kind),
		Type:            valueobject.AssetType(m.Type),
		CurrentValue:    value,
		AcquisitionDate: acquired,
		Description:     m.Description,
		CreatedAt:       m.CreatedAt,
		LastUpdated:     m.LastUpdated,
	}

	switch s.Kind {
	case entity.AssetKindStock:
		price, err := optionalMoney(m.PricePerShare, m.Currency)
		if err != nil {
			return nil, err
		}
		s.Stock = &entity.StockDetails{Symbol: m.Symbol, Shares: derefDecimal(m.Shares), PricePerShare: price}
	case entity.AssetKindPreciousMetal:
		price, err := optionalMoney(m.PricePerGram, m.Currency)
		if err != nil {
			return nil, err
		}
		s.Metal = &entity.MetalDetails{
			Weight:       derefDecimal(m.Weight),
			Unit:         entity.WeightUnit(m.WeightUnit),
			Karat:        m.Karat,
			SilverPurity: derefDecimal(m.SilverPurity),
			PricePerGram: price,
		}
	case entity.AssetKindProperty:
		appraisal, err := optionalMoney(m.Appraisal, m.Currency)
		if err != nil {
			return nil, err
		}
		p := &entity.PropertyDetails{Address: m.Address, Appraisal: appraisal}
		if m.LastValuationDate != nil {
			p.LastValuationDate = *m.LastValuationDate
		}
		s.Property = p
	}

	for _, p := range m.Payments {
		amount, err := money(p.Amount, p.Currency)
		if err != nil {
			return nil, err
		}
		s.Payments = append(s.Payments, entity.ZakatPayment{HijriYear: p.HijriYear, PaidDate: p.PaidDate, Amount: amount})
	}

	return entity.RestoreAsset(s)
}

func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
