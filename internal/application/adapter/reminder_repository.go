// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/domain/entity"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// ReminderFilter narrows a reminder listing. Zero values match everything.
type ReminderFilter struct {
	Status entity.ReminderStatus
	Type   entity.ReminderType
}

// ReminderRepository defines the interface for reminder persistence operations.
type ReminderRepository interface {
	// Create persists a new reminder.
	Create(ctx context.Context, reminder *entity.Reminder) error

	// CreateBatch persists several reminders in one transaction.
	CreateBatch(ctx context.Context, reminders []*entity.Reminder) error

	// FindByID retrieves a reminder by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reminder, error)

	// FindByUserID retrieves a user's reminders ordered by scheduled date.
	FindByUserID(ctx context.Context, userID uuid.UUID, filter ReminderFilter) ([]*entity.Reminder, error)

	// FindDue retrieves reminders scheduled on or before date that are pending,
	// or snoozed with a snooze that elapsed by now.
	FindDue(ctx context.Context, date valueobject.HijriDate, now time.Time, limit int) ([]*entity.Reminder, error)

	// Exists reports whether a reminder of the given type was ever created for
	// the user, asset and date, dismissed ones included.
	Exists(ctx context.Context, userID uuid.UUID, assetID *uuid.UUID, reminderType entity.ReminderType, date valueobject.HijriDate) (bool, error)

	// Update saves changes to a reminder.
	Update(ctx context.Context, reminder *entity.Reminder) error

	// Delete removes a reminder.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByAssetID removes every reminder tied to an asset.
	DeleteByAssetID(ctx context.Context, assetID uuid.UUID) error
}
