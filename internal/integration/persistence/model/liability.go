package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-calculator/backend/internal/domain/entity"
)

// LiabilityModel represents the liabilities table in the database.
type LiabilityModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Currency         string          `gorm:"type:varchar(3);not null"`
	Description      string          `gorm:"type:varchar(255)"`
	DueDate          *time.Time      `gorm:"type:date"`
	IsImmediatelyDue bool            `gorm:"default:false;index"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the LiabilityModel.
func (LiabilityModel) TableName() string {
	return "liabilities"
}

// ToEntity converts a LiabilityModel to a domain Liability entity.
func (m *LiabilityModel) ToEntity() (*entity.Liability, error) {
	amount, err := money(m.Amount, m.Currency)
	if err != nil {
		return nil, err
	}
	return &entity.Liability{
		ID:               m.ID,
		UserID:           m.UserID,
		Amount:           amount,
		Description:      m.Description,
		DueDate:          m.DueDate,
		IsImmediatelyDue: m.IsImmediatelyDue,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}

// LiabilityModelFromEntity creates a LiabilityModel from a domain Liability entity.
func LiabilityModelFromEntity(l *entity.Liability) *LiabilityModel {
	return &LiabilityModel{
		ID:               l.ID,
		UserID:           l.UserID,
		Amount:           l.Amount.Amount(),
		Currency:         l.Amount.Currency().Code(),
		Description:      l.Description,
		DueDate:          l.DueDate,
		IsImmediatelyDue: l.IsImmediatelyDue,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}
