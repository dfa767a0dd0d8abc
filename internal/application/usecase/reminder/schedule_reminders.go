package reminder

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/service"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// ScheduleRecurringRemindersInput represents the input for a recurring schedule.
// Frequency defaults to the user's preference and StartDate to today.
type ScheduleRecurringRemindersInput struct {
	UserID    uuid.UUID
	Frequency string
	StartDate string
}

// ScheduleRecurringRemindersOutput lists the stored reminders.
type ScheduleRecurringRemindersOutput struct {
	Reminders []*entity.Reminder
}

// ScheduleRecurringRemindersUseCase stores a run of recurring review reminders.
type ScheduleRecurringRemindersUseCase struct {
	userRepo        adapter.UserRepository
	reminderRepo    adapter.ReminderRepository
	calendar        adapter.HijriCalendarService
	reminderService *service.ReminderService
}

// NewScheduleRecurringRemindersUseCase creates a new ScheduleRecurringRemindersUseCase instance.
func NewScheduleRecurringRemindersUseCase(
	userRepo adapter.UserRepository,
	reminderRepo adapter.ReminderRepository,
	calendar adapter.HijriCalendarService,
) *ScheduleRecurringRemindersUseCase {
	return &ScheduleRecurringRemindersUseCase{
		userRepo:        userRepo,
		reminderRepo:    reminderRepo,
		calendar:        calendar,
		reminderService: service.NewReminderService(),
	}
}

// Execute stores the reminders.
func (uc *ScheduleRecurringRemindersUseCase) Execute(ctx context.Context, input ScheduleRecurringRemindersInput) (*ScheduleRecurringRemindersOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	frequency := user.NotificationPreferences.ReminderFrequency
	if input.Frequency != "" {
		if frequency, err = entity.ParseReminderFrequency(input.Frequency); err != nil {
			return nil, err
		}
	}

	start, err := dateOrToday(ctx, uc.calendar, input.StartDate)
	if err != nil {
		return nil, err
	}

	reminders, err := uc.reminderService.ScheduleRecurringReminders(user.ID, frequency, start)
	if err != nil {
		return nil, err
	}
	if err := uc.reminderRepo.CreateBatch(ctx, reminders); err != nil {
		return nil, fmt.Errorf("failed to store reminders: %w", err)
	}
	return &ScheduleRecurringRemindersOutput{Reminders: reminders}, nil
}

// CreateCustomReminderInput represents a free-form reminder.
type CreateCustomReminderInput struct {
	UserID  uuid.UUID
	Date    string
	Message string
	AssetID *uuid.UUID
}

// CreateCustomReminderUseCase stores a user-defined reminder.
type CreateCustomReminderUseCase struct {
	assetRepo       adapter.AssetRepository
	reminderRepo    adapter.ReminderRepository
	calendar        adapter.HijriCalendarService
	reminderService *service.ReminderService
}

// NewCreateCustomReminderUseCase creates a new CreateCustomReminderUseCase instance.
func NewCreateCustomReminderUseCase(
	assetRepo adapter.AssetRepository,
	reminderRepo adapter.ReminderRepository,
	calendar adapter.HijriCalendarService,
) *CreateCustomReminderUseCase {
	return &CreateCustomReminderUseCase{
		assetRepo:       assetRepo,
		reminderRepo:    reminderRepo,
		calendar:        calendar,
		reminderService: service.NewReminderService(),
	}
}

// Execute validates the optional asset link and stores the reminder.
func (uc *CreateCustomReminderUseCase) Execute(ctx context.Context, input CreateCustomReminderInput) (*entity.Reminder, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, domainerror.NewZakatError(
			domainerror.ErrCodeMissingFields,
			"reminder message is required",
			domainerror.ErrMissingFields,
		)
	}

	if input.AssetID != nil {
		a, err := uc.assetRepo.FindByID(ctx, *input.AssetID)
		if err != nil {
			return nil, err
		}
		if a.UserID != input.UserID {
			return nil, domainerror.NewZakatError(
				domainerror.ErrCodeAssetNotFound,
				fmt.Sprintf("asset %s not found", a.ID),
				domainerror.ErrAssetNotFound,
			)
		}
	}

	date, err := dateOrToday(ctx, uc.calendar, input.Date)
	if err != nil {
		return nil, err
	}

	r := uc.reminderService.CreateCustomReminder(input.UserID, date, message, input.AssetID)
	if err := uc.reminderRepo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to store reminder: %w", err)
	}
	return r, nil
}

func dateOrToday(ctx context.Context, calendar adapter.HijriCalendarService, value string) (valueobject.HijriDate, error) {
	if value != "" {
		return valueobject.ParseHijriDate(value)
	}
	today, err := calendar.CurrentDate(ctx)
	if err != nil {
		return valueobject.HijriDate{}, fmt.Errorf("failed to get current hijri date: %w", err)
	}
	return today, nil
}
