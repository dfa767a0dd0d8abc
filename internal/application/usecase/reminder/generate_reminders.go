package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/application/usecase/zakat"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/service"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// PreRamadanLookaheadDays is how far ahead of Ramadan the pre-Ramadan reminder is created.
const PreRamadanLookaheadDays = 30

// ZakatCalculator runs a zakat calculation for one user.
type ZakatCalculator interface {
	Execute(ctx context.Context, input zakat.CalculateZakatInput) (*zakat.CalculateZakatOutput, error)
}

// GenerateRemindersInput represents the input for one generation run.
type GenerateRemindersInput struct {
	BatchSize int
}

// GenerateRemindersOutput counts the outcome of a generation run.
type GenerateRemindersOutput struct {
	UsersProcessed int
	Created        int
	Failed         int
}

// GenerateRemindersUseCase walks every user and stores the hawl completion,
// pre-Ramadan and nisab threshold reminders their preferences ask for.
// Reminders already stored for the same day are not duplicated.
type GenerateRemindersUseCase struct {
	userRepo        adapter.UserRepository
	assetRepo       adapter.AssetRepository
	reminderRepo    adapter.ReminderRepository
	calendar        adapter.HijriCalendarService
	calculator      ZakatCalculator
	reminderService *service.ReminderService
	logger          *slog.Logger
}

// NewGenerateRemindersUseCase creates a new GenerateRemindersUseCase instance.
func NewGenerateRemindersUseCase(
	userRepo adapter.UserRepository,
	assetRepo adapter.AssetRepository,
	reminderRepo adapter.ReminderRepository,
	calendar adapter.HijriCalendarService,
	calculator ZakatCalculator,
) *GenerateRemindersUseCase {
	return &GenerateRemindersUseCase{
		userRepo:        userRepo,
		assetRepo:       assetRepo,
		reminderRepo:    reminderRepo,
		calendar:        calendar,
		calculator:      calculator,
		reminderService: service.NewReminderService(),
		logger:          slog.With("component", "reminder_generator"),
	}
}

// Execute runs one pass over all users. A failing user is logged and skipped.
func (uc *GenerateRemindersUseCase) Execute(ctx context.Context, input GenerateRemindersInput) (*GenerateRemindersOutput, error) {
	batchSize := input.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	today, err := uc.calendar.CurrentDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current hijri date: %w", err)
	}

	out := &GenerateRemindersOutput{}
	for offset := 0; ; offset += batchSize {
		users, err := uc.userRepo.List(ctx, offset, batchSize)
		if err != nil {
			return out, fmt.Errorf("failed to list users: %w", err)
		}
		for _, user := range users {
			out.UsersProcessed++
			created, err := uc.generateForUser(ctx, user, today)
			if err != nil {
				out.Failed++
				uc.logger.Error("failed to generate reminders",
					"user_id", user.ID,
					"error", err,
				)
				continue
			}
			out.Created += created
		}
		if len(users) < batchSize {
			break
		}
	}

	uc.logger.Info("reminder generation completed",
		"users", out.UsersProcessed,
		"created", out.Created,
		"failed", out.Failed,
	)
	return out, nil
}

func (uc *GenerateRemindersUseCase) generateForUser(ctx context.Context, user *entity.User, today valueobject.HijriDate) (int, error) {
	assets, err := uc.assetRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to load assets: %w", err)
	}

	candidates, err := uc.reminderService.ProcessUserReminders(user, assets, today)
	if err != nil {
		return 0, err
	}

	if user.NotificationPreferences.PreRamadanReminder {
		r, err := uc.preRamadanReminder(ctx, user, today)
		if err != nil {
			return 0, err
		}
		if r != nil {
			candidates = append(candidates, r)
		}
	}

	if user.NotificationPreferences.NisabThresholdAlert && len(assets) > 0 {
		r, err := uc.nisabAlert(ctx, user, today)
		if err != nil {
			return 0, err
		}
		if r != nil {
			candidates = append(candidates, r)
		}
	}

	fresh := make([]*entity.Reminder, 0, len(candidates))
	for _, r := range candidates {
		exists, err := uc.reminderRepo.Exists(ctx, r.UserID, r.AssetID, r.Type, r.ScheduledDate)
		if err != nil {
			return 0, fmt.Errorf("failed to check reminder existence: %w", err)
		}
		if !exists {
			fresh = append(fresh, r)
		}
	}
	if len(fresh) == 0 {
		return 0, nil
	}
	if err := uc.reminderRepo.CreateBatch(ctx, fresh); err != nil {
		return 0, fmt.Errorf("failed to store reminders: %w", err)
	}
	return len(fresh), nil
}

// preRamadanReminder returns a reminder when the next Ramadan starts within the lookahead.
func (uc *GenerateRemindersUseCase) preRamadanReminder(ctx context.Context, user *entity.User, today valueobject.HijriDate) (*entity.Reminder, error) {
	start, err := uc.calendar.RamadanStart(ctx, today.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to get ramadan start: %w", err)
	}
	if !start.IsAfter(today) {
		if start, err = uc.calendar.RamadanStart(ctx, today.Year()+1); err != nil {
			return nil, fmt.Errorf("failed to get ramadan start: %w", err)
		}
	}
	days, err := uc.calendar.DaysBetween(ctx, today, start)
	if err != nil {
		return nil, fmt.Errorf("failed to measure days to ramadan: %w", err)
	}
	if days > PreRamadanLookaheadDays {
		return nil, nil
	}
	return uc.reminderService.CreatePreRamadanReminder(user.ID, start, service.DefaultPreRamadanDaysBefore)
}

// nisabAlert returns an alert the first time in a Hijri year the user's wealth reaches the nisab.
func (uc *GenerateRemindersUseCase) nisabAlert(ctx context.Context, user *entity.User, today valueobject.HijriDate) (*entity.Reminder, error) {
	existing, err := uc.reminderRepo.FindByUserID(ctx, user.ID, adapter.ReminderFilter{Type: entity.ReminderTypeNisabThreshold})
	if err != nil {
		return nil, fmt.Errorf("failed to load nisab alerts: %w", err)
	}
	for _, r := range existing {
		if r.ScheduledDate.Year() == today.Year() {
			return nil, nil
		}
	}

	result, err := uc.calculator.Execute(ctx, zakat.CalculateZakatInput{UserID: user.ID})
	if errors.Is(err, domainerror.ErrNegativeResult) || errors.Is(err, domainerror.ErrNoAssets) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to calculate zakat: %w", err)
	}
	if !result.Result.IsAboveNisab {
		return nil, nil
	}

	message := fmt.Sprintf(
		"Your zakatable wealth of %s has reached the nisab of %s. Zakat of %s may be due.",
		result.Result.TotalWealth, result.Result.NisabThreshold, result.Result.ZakatDue,
	)
	return entity.NewReminder(user.ID, nil, entity.ReminderTypeNisabThreshold, today, message), nil
}
