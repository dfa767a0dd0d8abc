// Package reminder contains use cases that create, deliver and manage zakat reminders.
package reminder

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
)

// DefaultBatchSize bounds how many users or reminders one run handles.
const DefaultBatchSize = 100

// snoozeNotificationID keys the wake-up push scheduled for a snoozed reminder.
func snoozeNotificationID(id uuid.UUID) string {
	return "reminder:" + id.String()
}

func loadOwnedReminder(ctx context.Context, repo adapter.ReminderRepository, userID, reminderID uuid.UUID) (*entity.Reminder, error) {
	r, err := repo.FindByID(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, domainerror.NewZakatError(
			domainerror.ErrCodeReminderNotFound,
			fmt.Sprintf("reminder %s not found", reminderID),
			domainerror.ErrReminderNotFound,
		)
	}
	return r, nil
}

func reminderTitle(t entity.ReminderType) string {
	switch t {
	case entity.ReminderTypeHawlCompletion:
		return "Hawl completing soon"
	case entity.ReminderTypePreRamadan:
		return "Ramadan is approaching"
	case entity.ReminderTypeNisabThreshold:
		return "Your wealth reached the nisab"
	}
	return "Zakat reminder"
}

func pushFor(r *entity.Reminder) adapter.PushNotification {
	data := map[string]string{
		"reminder_id": r.ID.String(),
		"type":        string(r.Type),
	}
	if r.AssetID != nil {
		data["asset_id"] = r.AssetID.String()
	}
	return adapter.PushNotification{
		UserID: r.UserID,
		Title:  reminderTitle(r.Type),
		Body:   r.Message,
		Data:   data,
	}
}
