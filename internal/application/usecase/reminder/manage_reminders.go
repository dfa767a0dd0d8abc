package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
)

// ListRemindersInput filters a user's reminders. Empty filters match all.
type ListRemindersInput struct {
	UserID uuid.UUID
	Status string
	Type   string
}

// ListRemindersUseCase lists a user's reminders ordered by date.
type ListRemindersUseCase struct {
	reminderRepo adapter.ReminderRepository
}

// NewListRemindersUseCase creates a new ListRemindersUseCase instance.
func NewListRemindersUseCase(reminderRepo adapter.ReminderRepository) *ListRemindersUseCase {
	return &ListRemindersUseCase{reminderRepo: reminderRepo}
}

// Execute returns the reminders.
func (uc *ListRemindersUseCase) Execute(ctx context.Context, input ListRemindersInput) ([]*entity.Reminder, error) {
	filter := adapter.ReminderFilter{
		Status: entity.ReminderStatus(strings.ToUpper(input.Status)),
		Type:   entity.ReminderType(strings.ToUpper(input.Type)),
	}
	reminders, err := uc.reminderRepo.FindByUserID(ctx, input.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// SnoozeReminderInput postpones a reminder until the given instant.
type SnoozeReminderInput struct {
	UserID     uuid.UUID
	ReminderID uuid.UUID
	Until      time.Time
}

// SnoozeReminderUseCase snoozes a reminder and schedules its wake-up push.
type SnoozeReminderUseCase struct {
	reminderRepo  adapter.ReminderRepository
	notifications adapter.NotificationService
	now           func() time.Time
}

// NewSnoozeReminderUseCase creates a new SnoozeReminderUseCase instance.
func NewSnoozeReminderUseCase(reminderRepo adapter.ReminderRepository, notifications adapter.NotificationService) *SnoozeReminderUseCase {
	return &SnoozeReminderUseCase{
		reminderRepo:  reminderRepo,
		notifications: notifications,
		now:           time.Now,
	}
}

// Execute snoozes the reminder. Until must lie in the future.
func (uc *SnoozeReminderUseCase) Execute(ctx context.Context, input SnoozeReminderInput) (*entity.Reminder, error) {
	if !input.Until.After(uc.now()) {
		return nil, domainerror.NewZakatError(
			domainerror.ErrCodeInvalidSnoozeTime,
			"snooze time must be in the future",
			domainerror.ErrInvalidSnoozeTime,
		)
	}

	r, err := loadOwnedReminder(ctx, uc.reminderRepo, input.UserID, input.ReminderID)
	if err != nil {
		return nil, err
	}
	if err := r.Snooze(input.Until); err != nil {
		return nil, err
	}

	push := pushFor(r)
	push.ID = snoozeNotificationID(r.ID)
	if _, err := uc.notifications.Schedule(ctx, push, input.Until); err != nil {
		return nil, fmt.Errorf("failed to schedule snooze notification: %w", err)
	}
	if err := uc.reminderRepo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}
	return r, nil
}

// DismissReminderInput identifies the reminder to dismiss.
type DismissReminderInput struct {
	UserID     uuid.UUID
	ReminderID uuid.UUID
}

// DismissReminderUseCase closes a reminder and cancels any pending wake-up push.
type DismissReminderUseCase struct {
	reminderRepo  adapter.ReminderRepository
	notifications adapter.NotificationService
}

// NewDismissReminderUseCase creates a new DismissReminderUseCase instance.
func NewDismissReminderUseCase(reminderRepo adapter.ReminderRepository, notifications adapter.NotificationService) *DismissReminderUseCase {
	return &DismissReminderUseCase{
		reminderRepo:  reminderRepo,
		notifications: notifications,
	}
}

// Execute dismisses the reminder.
func (uc *DismissReminderUseCase) Execute(ctx context.Context, input DismissReminderInput) (*entity.Reminder, error) {
	r, err := loadOwnedReminder(ctx, uc.reminderRepo, input.UserID, input.ReminderID)
	if err != nil {
		return nil, err
	}
	wasSnoozed := r.Status == entity.ReminderStatusSnoozed
	r.Dismiss()

	if wasSnoozed {
		if err := uc.notifications.CancelScheduled(ctx, snoozeNotificationID(r.ID)); err != nil {
			return nil, fmt.Errorf("failed to cancel snooze notification: %w", err)
		}
	}
	if err := uc.reminderRepo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}
	return r, nil
}
