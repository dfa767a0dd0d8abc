// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueWelcomeEmail queues the registration email.
	QueueWelcomeEmail(ctx context.Context, input QueueWelcomeInput) error

	// QueueReminderEmail queues a zakat reminder email.
	QueueReminderEmail(ctx context.Context, input QueueReminderInput) error
}

// QueueWelcomeInput represents the input for queueing a welcome email.
type QueueWelcomeInput struct {
	UserEmail   string
	UserName    string
	NisabMethod string
	Currency    string
}

// QueueReminderInput represents the input for queueing a reminder email.
type QueueReminderInput struct {
	UserEmail     string
	UserName      string
	Subject       string
	Message       string
	ScheduledDate string
	ReminderID    string
}
