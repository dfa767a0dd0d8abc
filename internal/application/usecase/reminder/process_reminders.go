package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
)

// ProcessRemindersInput represents the input for one delivery run.
type ProcessRemindersInput struct {
	BatchSize int
}

// ProcessRemindersOutput counts the reminders looked at and delivered.
type ProcessRemindersOutput struct {
	Processed int
	Sent      int
	Failed    int
}

// ProcessRemindersUseCase delivers due reminders through the channels each
// user enabled. Snoozed reminders whose snooze has elapsed return to pending
// first; their push was already sent by the snooze schedule.
type ProcessRemindersUseCase struct {
	userRepo      adapter.UserRepository
	reminderRepo  adapter.ReminderRepository
	notifications adapter.NotificationService
	calendar      adapter.HijriCalendarService
	now           func() time.Time
	logger        *slog.Logger
}

// NewProcessRemindersUseCase creates a new ProcessRemindersUseCase instance.
func NewProcessRemindersUseCase(
	userRepo adapter.UserRepository,
	reminderRepo adapter.ReminderRepository,
	notifications adapter.NotificationService,
	calendar adapter.HijriCalendarService,
) *ProcessRemindersUseCase {
	return &ProcessRemindersUseCase{
		userRepo:      userRepo,
		reminderRepo:  reminderRepo,
		notifications: notifications,
		calendar:      calendar,
		now:           time.Now,
		logger:        slog.With("component", "reminder_processor"),
	}
}

// Execute delivers one batch. Failures are logged per reminder and never abort the batch.
func (uc *ProcessRemindersUseCase) Execute(ctx context.Context, input ProcessRemindersInput) (*ProcessRemindersOutput, error) {
	batchSize := input.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	today, err := uc.calendar.CurrentDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current hijri date: %w", err)
	}
	now := uc.now()
	due, err := uc.reminderRepo.FindDue(ctx, today, now, batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load due reminders: %w", err)
	}

	users := map[uuid.UUID]*entity.User{}
	out := &ProcessRemindersOutput{}

	for _, r := range due {
		wokeFromSnooze := false
		if r.Status == entity.ReminderStatusSnoozed {
			if r.SnoozedUntil != nil && now.Before(*r.SnoozedUntil) {
				continue
			}
			r.Reschedule(r.ScheduledDate)
			wokeFromSnooze = true
		}
		if !r.IsDue(now) {
			continue
		}

		out.Processed++
		logger := uc.logger.With("reminder_id", r.ID, "user_id", r.UserID, "type", r.Type)

		if err := uc.deliver(ctx, users, r, !wokeFromSnooze); err != nil {
			out.Failed++
			logger.Error("failed to deliver reminder", "error", err)
			if wokeFromSnooze {
				if err := uc.reminderRepo.Update(ctx, r); err != nil {
					logger.Error("failed to save reminder", "error", err)
				}
			}
			continue
		}
		if err := r.MarkAsSent(); err != nil {
			out.Failed++
			logger.Error("failed to mark reminder as sent", "error", err)
			continue
		}
		if err := uc.reminderRepo.Update(ctx, r); err != nil {
			out.Failed++
			logger.Error("failed to save reminder", "error", err)
			continue
		}
		out.Sent++
	}

	uc.logger.Info("reminder processing completed",
		"processed", out.Processed,
		"sent", out.Sent,
		"failed", out.Failed,
	)
	return out, nil
}

// deliver sends r on every enabled channel. It fails only when every
// attempted channel failed; a user with no channel enabled counts as delivered.
func (uc *ProcessRemindersUseCase) deliver(ctx context.Context, users map[uuid.UUID]*entity.User, r *entity.Reminder, withPush bool) error {
	user, ok := users[r.UserID]
	if !ok {
		var err error
		if user, err = uc.userRepo.FindByID(ctx, r.UserID); err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		users[r.UserID] = user
	}
	prefs := user.NotificationPreferences

	attempted, delivered := 0, 0
	var errs []error

	if prefs.EnablePush && withPush {
		attempted++
		if err := uc.notifications.SendPush(ctx, pushFor(r)); err != nil {
			errs = append(errs, fmt.Errorf("push: %w", err))
		} else {
			delivered++
		}
	}
	if prefs.EnableEmail {
		attempted++
		id := r.ID
		if err := uc.notifications.SendEmail(ctx, adapter.EmailNotification{
			To:            user.Email,
			Name:          user.Name,
			Subject:       reminderTitle(r.Type),
			Message:       r.Message,
			ScheduledDate: r.ScheduledDate.String(),
			ReminderID:    &id,
		}); err != nil {
			errs = append(errs, fmt.Errorf("email: %w", err))
		} else {
			delivered++
		}
	}
	if prefs.EnableSMS && user.PhoneNumber != "" {
		attempted++
		if err := uc.notifications.SendSMS(ctx, user.PhoneNumber, r.Message); err != nil {
			errs = append(errs, fmt.Errorf("sms: %w", err))
		} else {
			delivered++
		}
	}

	if attempted > 0 && delivered == 0 {
		return errors.Join(errs...)
	}
	for _, err := range errs {
		uc.logger.Warn("reminder channel failed", "reminder_id", r.ID, "error", err)
	}
	return nil
}
