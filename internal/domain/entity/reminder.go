// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// ReminderType represents what a reminder is about.
type ReminderType string

const (
	ReminderTypeHawlCompletion ReminderType = "HAWL_COMPLETION"
	ReminderTypePreRamadan     ReminderType = "PRE_RAMADAN"
	ReminderTypeCustom         ReminderType = "CUSTOM"
	ReminderTypeNisabThreshold ReminderType = "NISAB_THRESHOLD"
)

// ReminderStatus represents the delivery state of a reminder.
type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "PENDING"
	ReminderStatusSent      ReminderStatus = "SENT"
	ReminderStatusSnoozed   ReminderStatus = "SNOOZED"
	ReminderStatusDismissed ReminderStatus = "DISMISSED"
)

// Reminder represents a scheduled zakat notification.
// Status changes go through the transition methods.
type Reminder struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	AssetID       *uuid.UUID
	Type          ReminderType
	ScheduledDate valueobject.HijriDate
	Status        ReminderStatus
	Message       string
	SnoozedUntil  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewReminder creates a pending reminder.
func NewReminder(userID uuid.UUID, assetID *uuid.UUID, reminderType ReminderType, scheduled valueobject.HijriDate, message string) *Reminder {
	now := time.Now().UTC()
	return &Reminder{
		ID:            uuid.New(),
		UserID:        userID,
		AssetID:       assetID,
		Type:          reminderType,
		ScheduledDate: scheduled,
		Status:        ReminderStatusPending,
		Message:       message,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// MarkAsSent moves a pending reminder to sent.
func (r *Reminder) MarkAsSent() error {
	if r.Status != ReminderStatusPending {
		return r.invalidTransition(ReminderStatusSent)
	}
	r.Status = ReminderStatusSent
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// Snooze postpones a pending or already snoozed reminder until the given instant.
func (r *Reminder) Snooze(until time.Time) error {
	if r.Status != ReminderStatusPending && r.Status != ReminderStatusSnoozed {
		return r.invalidTransition(ReminderStatusSnoozed)
	}
	r.Status = ReminderStatusSnoozed
	r.SnoozedUntil = &until
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// Dismiss closes the reminder from any state.
func (r *Reminder) Dismiss() {
	r.Status = ReminderStatusDismissed
	r.UpdatedAt = time.Now().UTC()
}

// Reschedule moves the reminder to a new date, returns it to pending and clears any snooze.
func (r *Reminder) Reschedule(date valueobject.HijriDate) {
	r.ScheduledDate = date
	r.Status = ReminderStatusPending
	r.SnoozedUntil = nil
	r.UpdatedAt = time.Now().UTC()
}

// IsDue reports whether the reminder is pending and any snooze has elapsed.
func (r *Reminder) IsDue(now time.Time) bool {
	if r.Status != ReminderStatusPending {
		return false
	}
	if r.SnoozedUntil != nil && now.Before(*r.SnoozedUntil) {
		return false
	}
	return true
}

func (r *Reminder) invalidTransition(to ReminderStatus) error {
	return domainerror.NewZakatError(
		domainerror.ErrCodeInvalidReminderTransition,
		fmt.Sprintf("reminder %s cannot move from %s to %s", r.ID, r.Status, to),
		domainerror.ErrInvalidReminderTransition,
	)
}
