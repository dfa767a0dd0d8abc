// Package email queues transactional emails and delivers them through Resend.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueueWelcomeEmail queues the registration email.
func (s *Service) QueueWelcomeEmail(ctx context.Context, input adapter.QueueWelcomeInput) error {
	job := entity.NewEmailJob(
		entity.TemplateWelcome,
		input.UserEmail,
		input.UserName,
		"Welcome to Zakat Calculator",
		map[string]interface{}{
			"user_name":    input.UserName,
			"nisab_method": input.NisabMethod,
			"currency":     input.Currency,
			"app_url":      s.appBaseURL,
		},
	)
	return s.enqueue(ctx, job, "welcome")
}

// QueueReminderEmail queues a zakat reminder email. A reminder already
// queued or sent is not queued twice.
func (s *Service) QueueReminderEmail(ctx context.Context, input adapter.QueueReminderInput) error {
	var reference *uuid.UUID
	if input.ReminderID != "" {
		id, err := uuid.Parse(input.ReminderID)
		if err != nil {
			return fmt.Errorf("invalid reminder id %q: %w", input.ReminderID, err)
		}
		exists, err := s.queue.ExistsForReference(ctx, id)
		if err != nil {
			return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to check reminder email", err)
		}
		if exists {
			slog.Debug("Reminder email already queued", "reminder_id", id)
			return nil
		}
		reference = &id
	}

	job := entity.NewEmailJob(
		entity.TemplateZakatReminder,
		input.UserEmail,
		input.UserName,
		input.Subject,
		map[string]interface{}{
			"user_name":      input.UserName,
			"message":        input.Message,
			"scheduled_date": input.ScheduledDate,
			"reminders_url":  s.appBaseURL + "/reminders",
		},
	)
	job.ReferenceID = reference
	return s.enqueue(ctx, job, "zakat reminder")
}

func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob, kind string) error {
	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue "+kind+" email",
			err,
		)
	}
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
