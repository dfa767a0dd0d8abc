// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// ReminderFrequency is the cadence of recurring zakat reminders.
type ReminderFrequency string

const (
	ReminderFrequencyWeekly    ReminderFrequency = "weekly"
	ReminderFrequencyMonthly   ReminderFrequency = "monthly"
	ReminderFrequencyQuarterly ReminderFrequency = "quarterly"
)

// ParseReminderFrequency validates a reminder frequency. Values are case-insensitive.
func ParseReminderFrequency(value string) (ReminderFrequency, error) {
	f := ReminderFrequency(strings.ToLower(strings.TrimSpace(value)))
	switch f {
	case ReminderFrequencyWeekly, ReminderFrequencyMonthly, ReminderFrequencyQuarterly:
		return f, nil
	}
	return "", domainerror.NewZakatError(
		domainerror.ErrCodeInvalidReminderFrequency,
		fmt.Sprintf("invalid reminder frequency %q", value),
		domainerror.ErrInvalidReminderFrequency,
	)
}

// NotificationPreferences controls which reminders a user receives and how.
type NotificationPreferences struct {
	EnablePush             bool
	EnableEmail            bool
	EnableSMS              bool
	ReminderFrequency      ReminderFrequency
	PreRamadanReminder     bool
	HawlCompletionReminder bool
	NisabThresholdAlert    bool
}

// DefaultNotificationPreferences returns the preferences assigned at registration.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		EnablePush:             true,
		EnableEmail:            true,
		EnableSMS:              false,
		ReminderFrequency:      ReminderFrequencyMonthly,
		PreRamadanReminder:     true,
		HawlCompletionReminder: true,
		NisabThresholdAlert:    true,
	}
}

// User represents a user in the Zakat Calculator system.
type User struct {
	ID                      uuid.UUID
	Email                   string
	Name                    string
	PhoneNumber             string
	PasswordHash            string
	Currency                valueobject.Currency
	NisabMethod             valueobject.NisabMethod
	NotificationPreferences NotificationPreferences
	CreatedAt               time.Time
	UpdatedAt               time.Time
	LastLoginAt             time.Time
}

// NewUser creates a new User with default preferences.
func NewUser(email, name, passwordHash string, currency valueobject.Currency, nisabMethod valueobject.NisabMethod) *User {
	now := time.Now().UTC()
	return &User{
		ID:                      uuid.New(),
		Email:                   email,
		Name:                    name,
		PasswordHash:            passwordHash,
		Currency:                currency,
		NisabMethod:             nisabMethod,
		NotificationPreferences: DefaultNotificationPreferences(),
		CreatedAt:               now,
		UpdatedAt:               now,
		LastLoginAt:             now,
	}
}

// UpdateProfile changes the display name and reporting currency.
func (u *User) UpdateProfile(name string, currency valueobject.Currency) {
	u.Name = name
	u.Currency = currency
	u.UpdatedAt = time.Now().UTC()
}

// UpdateNisabMethod changes the metal used for the nisab threshold.
func (u *User) UpdateNisabMethod(method valueobject.NisabMethod) {
	u.NisabMethod = method
	u.UpdatedAt = time.Now().UTC()
}

// UpdateNotificationPreferences replaces the notification preferences.
func (u *User) UpdateNotificationPreferences(prefs NotificationPreferences) {
	u.NotificationPreferences = prefs
	u.UpdatedAt = time.Now().UTC()
}

// RecordLogin stamps the last login time.
func (u *User) RecordLogin() {
	u.LastLoginAt = time.Now().UTC()
}
