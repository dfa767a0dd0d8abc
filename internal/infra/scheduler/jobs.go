package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zakat-calculator/backend/config"
	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/application/usecase/asset"
	"github.com/zakat-calculator/backend/internal/application/usecase/reminder"
)

// Job names.
const (
	JobGenerateReminders     = "generate_reminders"
	JobProcessReminders      = "process_reminders"
	JobDispatchNotifications = "dispatch_notifications"
	JobRefreshMarketPrices   = "refresh_market_prices"
	JobCleanup               = "cleanup"
)

// ReminderGenerator is satisfied by reminder.GenerateRemindersUseCase.
type ReminderGenerator interface {
	Execute(ctx context.Context, input reminder.GenerateRemindersInput) (*reminder.GenerateRemindersOutput, error)
}

// ReminderProcessor is satisfied by reminder.ProcessRemindersUseCase.
type ReminderProcessor interface {
	Execute(ctx context.Context, input reminder.ProcessRemindersInput) (*reminder.ProcessRemindersOutput, error)
}

// PriceRefresher is satisfied by asset.RefreshMarketPricesUseCase.
type PriceRefresher interface {
	Execute(ctx context.Context) (*asset.RefreshMarketPricesOutput, error)
}

// SentEmailPurger removes delivered emails past retention.
type SentEmailPurger interface {
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}

// ExpiredTokenPurger removes expired refresh tokens.
type ExpiredTokenPurger interface {
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// Jobs holds the collaborators of the background jobs.
type Jobs struct {
	Generator     ReminderGenerator
	Processor     ReminderProcessor
	Notifications adapter.NotificationService
	Prices        PriceRefresher
	Emails        SentEmailPurger
	Tokens        ExpiredTokenPurger
	BatchSize     int
	RetentionDays int
	Now           func() time.Time
}

// Register adds every configured job to s.
func (j Jobs) Register(s *Scheduler, cfg config.ReminderConfig) error {
	entries := []struct {
		schedule string
		job      Job
	}{
		{cfg.GenerateSchedule, j.GenerateReminders()},
		{cfg.ProcessSchedule, j.ProcessReminders()},
		{cfg.DispatchSchedule, j.DispatchNotifications()},
		{cfg.PriceRefreshSchedule, j.RefreshMarketPrices()},
		{cfg.CleanupSchedule, j.Cleanup()},
	}
	for _, e := range entries {
		if e.schedule == "" {
			continue
		}
		if err := s.AddJob(e.schedule, e.job); err != nil {
			return fmt.Errorf("failed to register %s: %w", e.job.Name(), err)
		}
	}
	return nil
}

// GenerateReminders creates the hawl, pre-Ramadan and nisab reminders.
func (j Jobs) GenerateReminders() Job {
	return NewJob(JobGenerateReminders, func(ctx context.Context) error {
		out, err := j.Generator.Execute(ctx, reminder.GenerateRemindersInput{BatchSize: j.BatchSize})
		if err != nil {
			return err
		}
		slog.Info("Reminders generated",
			"users", out.UsersProcessed,
			"created", out.Created,
			"failed", out.Failed,
		)
		return nil
	})
}

// ProcessReminders delivers due reminders.
func (j Jobs) ProcessReminders() Job {
	return NewJob(JobProcessReminders, func(ctx context.Context) error {
		out, err := j.Processor.Execute(ctx, reminder.ProcessRemindersInput{BatchSize: j.BatchSize})
		if err != nil {
			return err
		}
		if out.Processed > 0 {
			slog.Info("Reminders processed",
				"processed", out.Processed,
				"sent", out.Sent,
				"failed", out.Failed,
			)
		}
		return nil
	})
}

// DispatchNotifications sends scheduled push notifications that are due.
func (j Jobs) DispatchNotifications() Job {
	return NewJob(JobDispatchNotifications, func(ctx context.Context) error {
		sent, err := j.Notifications.DispatchDue(ctx, j.now())
		if err != nil {
			return err
		}
		if sent > 0 {
			slog.Info("Scheduled notifications dispatched", "sent", sent)
		}
		return nil
	})
}

// RefreshMarketPrices revalues stock and metal assets.
func (j Jobs) RefreshMarketPrices() Job {
	return NewJob(JobRefreshMarketPrices, func(ctx context.Context) error {
		out, err := j.Prices.Execute(ctx)
		if err != nil {
			return err
		}
		slog.Info("Market prices refreshed",
			"processed", out.Processed,
			"updated", out.Updated,
			"failed", out.Failed,
		)
		return nil
	})
}

// Cleanup purges sent emails past retention and expired refresh tokens.
func (j Jobs) Cleanup() Job {
	return NewJob(JobCleanup, func(ctx context.Context) error {
		emails, err := j.Emails.DeleteOldSentJobs(ctx, j.RetentionDays)
		if err != nil {
			return fmt.Errorf("failed to purge sent emails: %w", err)
		}
		tokens, err := j.Tokens.DeleteExpired(ctx, j.now())
		if err != nil {
			return fmt.Errorf("failed to purge expired tokens: %w", err)
		}
		slog.Info("Cleanup finished", "emails", emails, "tokens", tokens)
		return nil
	})
}

func (j Jobs) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now().UTC()
}
