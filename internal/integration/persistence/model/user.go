// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/domain/entity"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// UserModel represents the user table in the database.
type UserModel struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email                  string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name                   string    `gorm:"type:varchar(100);not null"`
	PhoneNumber            string    `gorm:"type:varchar(32)"`
	PasswordHash           string    `gorm:"type:varchar(255);not null"`
	Currency               string    `gorm:"type:varchar(3);not null;default:'USD'"`
	NisabMethod            string    `gorm:"type:varchar(10);not null;default:'GOLD'"`
	EnablePush             bool      `gorm:"default:true"`
	EnableEmail            bool      `gorm:"default:true"`
	EnableSMS              bool      `gorm:"default:false"`
	ReminderFrequency      string    `gorm:"type:varchar(10);not null;default:'monthly'"`
	PreRamadanReminder     bool      `gorm:"default:true"`
	HawlCompletionReminder bool      `gorm:"default:true"`
	NisabThresholdAlert    bool      `gorm:"default:true"`
	CreatedAt              time.Time `gorm:"not null"`
	UpdatedAt              time.Time `gorm:"not null"`
	LastLoginAt            time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() (*entity.User, error) {
	currency, err := valueobject.ParseCurrency(m.Currency)
	if err != nil {
		return nil, err
	}
	method, err := valueobject.ParseNisabMethod(m.NisabMethod)
	if err != nil {
		return nil, err
	}
	frequency, err := entity.ParseReminderFrequency(m.ReminderFrequency)
	if err != nil {
		return nil, err
	}

	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PhoneNumber:  m.PhoneNumber,
		PasswordHash: m.PasswordHash,
		Currency:     currency,
		NisabMethod:  method,
		NotificationPreferences: entity.NotificationPreferences{
			EnablePush:             m.EnablePush,
			EnableEmail:            m.EnableEmail,
			EnableSMS:              m.EnableSMS,
			ReminderFrequency:      frequency,
			PreRamadanReminder:     m.PreRamadanReminder,
			HawlCompletionReminder: m.HawlCompletionReminder,
			NisabThresholdAlert:    m.NisabThresholdAlert,
		},
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		LastLoginAt: m.LastLoginAt,
	}, nil
}

// FromEntity creates a UserModel from a domain User entity.
func FromEntity(user *entity.User) *UserModel {
	prefs := user.NotificationPreferences
	return &UserModel{
		ID:                     user.ID,
		Email:                  user.Email,
		Name:                   user.Name,
		PhoneNumber:            user.PhoneNumber,
		PasswordHash:           user.PasswordHash,
		Currency:               user.Currency.Code(),
		NisabMethod:            string(user.NisabMethod),
		EnablePush:             prefs.EnablePush,
		EnableEmail:            prefs.EnableEmail,
		EnableSMS:              prefs.EnableSMS,
		ReminderFrequency:      string(prefs.ReminderFrequency),
		PreRamadanReminder:     prefs.PreRamadanReminder,
		HawlCompletionReminder: prefs.HawlCompletionReminder,
		NisabThresholdAlert:    prefs.NisabThresholdAlert,
		CreatedAt:              user.CreatedAt,
		UpdatedAt:              user.UpdatedAt,
		LastLoginAt:            user.LastLoginAt,
	}
}

// RefreshTokenModel represents the refresh_tokens table for token invalidation tracking.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token       string    `gorm:"type:varchar(500);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RefreshTokenModel.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
