package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/domain/entity"
)

// ReminderModel represents the reminders table. ScheduledKey holds the
// Hijri date as yyyymmdd, ScheduledDate the readable form.
type ReminderModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssetID       *uuid.UUID `gorm:"type:uuid;index"`
	Type          string     `gorm:"type:varchar(20);not null"`
	ScheduledKey  int        `gorm:"not null;index"`
	ScheduledDate string     `gorm:"type:varchar(16);not null"`
	Status        string     `gorm:"type:varchar(12);not null;index"`
	Message       string     `gorm:"type:text"`
	SnoozedUntil  *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the ReminderModel.
func (ReminderModel) TableName() string {
	return "reminders"
}

// ToEntity converts a ReminderModel to a domain Reminder entity.
func (m *ReminderModel) ToEntity() (*entity.Reminder, error) {
	date, err := HijriFromKey(m.ScheduledKey)
	if err != nil {
		return nil, err
	}
	return &entity.Reminder{
		ID:            m.ID,
		UserID:        m.UserID,
		AssetID:       m.AssetID,
		Type:          entity.ReminderType(m.Type),
		ScheduledDate: date,
		Status:        entity.ReminderStatus(m.Status),
		Message:       m.Message,
		SnoozedUntil:  m.SnoozedUntil,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// ReminderModelFromEntity creates a ReminderModel from a domain Reminder entity.
func ReminderModelFromEntity(r *entity.Reminder) *ReminderModel {
	var snoozedUntil *time.Time
	if r.SnoozedUntil != nil {
		until := r.SnoozedUntil.UTC()
		snoozedUntil = &until
	}
	return &ReminderModel{
		ID:            r.ID,
		UserID:        r.UserID,
		AssetID:       r.AssetID,
		Type:          string(r.Type),
		ScheduledKey:  HijriKey(r.ScheduledDate),
		ScheduledDate: r.ScheduledDate.String(),
		Status:        string(r.Status),
		Message:       r.Message,
		SnoozedUntil:  snoozedUntil,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
