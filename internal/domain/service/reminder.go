package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

const (
	// DefaultHawlReminderDaysBefore is how early a hawl completion reminder fires.
	DefaultHawlReminderDaysBefore = 7
	// DefaultPreRamadanDaysBefore is how early a pre-Ramadan reminder fires.
	DefaultPreRamadanDaysBefore = 14
	// HawlReminderWindowDays bounds how close hawl completion must be to emit a reminder.
	HawlReminderWindowDays = 7
	// RecurringReminderCount is the number of reminders one schedule produces.
	RecurringReminderCount = 4

	daysPerRollbackMonth = 29

	preRamadanMessage = "Ramadan is approaching. Consider calculating and paying your zakat during this blessed month."
	recurringMessage  = "Reminder to review your zakat obligations."
)

// recurringStepMonths is the lunar-month advance per recurring reminder.
// Weekly cannot be expressed in lunar months and does not advance.
var recurringStepMonths = map[entity.ReminderFrequency]int{
	entity.ReminderFrequencyWeekly:    0,
	entity.ReminderFrequencyMonthly:   1,
	entity.ReminderFrequencyQuarterly: 3,
}

// ReminderService derives reminder entities from asset and user calendar state.
type ReminderService struct {
	now func() time.Time
}

// NewReminderService creates a new ReminderService using the system clock.
func NewReminderService() *ReminderService {
	return &ReminderService{now: time.Now}
}

// NewReminderServiceWithClock creates a ReminderService with a custom clock.
func NewReminderServiceWithClock(now func() time.Time) *ReminderService {
	return &ReminderService{now: now}
}

// CreateHawlCompletionReminder schedules a reminder daysBefore days ahead of the asset's hawl completion.
func (s *ReminderService) CreateHawlCompletionReminder(userID uuid.UUID, asset *entity.Asset, daysBefore int) (*entity.Reminder, error) {
	completion := asset.HawlCompletionDate()
	date, err := SubtractDays(completion, daysBefore)
	if err != nil {
		return nil, err
	}

	assetID := asset.ID
	message := fmt.Sprintf("Your %s will complete its hawl on %s. Zakat may be due.", asset.Description, completion)
	return entity.NewReminder(userID, &assetID, entity.ReminderTypeHawlCompletion, date, message), nil
}

// CreatePreRamadanReminder schedules a reminder daysBefore days ahead of Ramadan.
func (s *ReminderService) CreatePreRamadanReminder(userID uuid.UUID, ramadanStart valueobject.HijriDate, daysBefore int) (*entity.Reminder, error) {
	date, err := SubtractDays(ramadanStart, daysBefore)
	if err != nil {
		return nil, err
	}
	return entity.NewReminder(userID, nil, entity.ReminderTypePreRamadan, date, preRamadanMessage), nil
}

// CreateCustomReminder schedules a free-form reminder, optionally tied to an asset.
func (s *ReminderService) CreateCustomReminder(userID uuid.UUID, date valueobject.HijriDate, message string, assetID *uuid.UUID) *entity.Reminder {
	return entity.NewReminder(userID, assetID, entity.ReminderTypeCustom, date, message)
}

// CreateNisabThresholdAlert schedules an alert for today.
func (s *ReminderService) CreateNisabThresholdAlert(userID uuid.UUID, message string) *entity.Reminder {
	return entity.NewReminder(userID, nil, entity.ReminderTypeNisabThreshold, valueobject.TodayFrom(s.now()), message)
}

// ProcessUserReminders emits a hawl completion reminder for every currently
// zakatable asset whose hawl completes within the next seven days. Nothing is
// emitted when the user has disabled hawl reminders.
func (s *ReminderService) ProcessUserReminders(user *entity.User, assets []*entity.Asset, current valueobject.HijriDate) ([]*entity.Reminder, error) {
	if !user.NotificationPreferences.HawlCompletionReminder {
		return nil, nil
	}

	var reminders []*entity.Reminder
	for _, a := range assets {
		if !a.IsCurrentlyZakatable(current) {
			continue
		}
		daysUntil := current.ApproximateDaysUntil(a.HawlCompletionDate())
		if daysUntil <= 0 || daysUntil > HawlReminderWindowDays {
			continue
		}
		r, err := s.CreateHawlCompletionReminder(user.ID, a, DefaultHawlReminderDaysBefore)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, nil
}

// ScheduleRecurringReminders produces four custom reminders starting at start
// and stepping 0, 1 or 3 lunar months for weekly, monthly or quarterly.
func (s *ReminderService) ScheduleRecurringReminders(userID uuid.UUID, frequency entity.ReminderFrequency, start valueobject.HijriDate) ([]*entity.Reminder, error) {
	step, ok := recurringStepMonths[frequency]
	if !ok {
		return nil, domainerror.NewZakatError(
			domainerror.ErrCodeInvalidReminderFrequency,
			fmt.Sprintf("invalid reminder frequency %q", frequency),
			domainerror.ErrInvalidReminderFrequency,
		)
	}

	reminders := make([]*entity.Reminder, 0, RecurringReminderCount)
	date := start
	for i := 0; i < RecurringReminderCount; i++ {
		reminders = append(reminders, s.CreateCustomReminder(userID, date, recurringMessage, nil))

		next, err := date.AddLunarMonths(step)
		if err != nil {
			return nil, err
		}
		date = next
	}
	return reminders, nil
}

// SubtractDays moves a date back by days, borrowing 29 days for every month
// crossed.
func SubtractDays(date valueobject.HijriDate, days int) (valueobject.HijriDate, error) {
	year, month, day := date.Year(), date.Month(), date.Day()-days
	for day <= 0 {
		month--
		if month < 1 {
			month = 12
			year--
		}
		day += daysPerRollbackMonth
	}
	return valueobject.NewHijriDate(year, month, day)
}
