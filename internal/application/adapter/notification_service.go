// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PushNotification is a message delivered to a user's devices.
// ID is optional and lets a scheduled notification be cancelled by a known key.
type PushNotification struct {
	ID     string            `json:"id,omitempty"`
	UserID uuid.UUID         `json:"user_id"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// EmailNotification is a reminder delivered by email.
type EmailNotification struct {
	To            string
	Name          string
	Subject       string
	Message       string
	ScheduledDate string
	ReminderID    *uuid.UUID
}

// NotificationService defines the interface for delivering notifications.
type NotificationService interface {
	// SendPush delivers a push notification immediately.
	SendPush(ctx context.Context, notification PushNotification) error

	// SendEmail queues an email notification.
	SendEmail(ctx context.Context, notification EmailNotification) error

	// SendSMS queues a text message.
	SendSMS(ctx context.Context, phoneNumber, message string) error

	// Schedule stores a push notification for later delivery and returns its ID.
	// Scheduling an ID again replaces the earlier entry.
	Schedule(ctx context.Context, notification PushNotification, at time.Time) (string, error)

	// CancelScheduled removes a scheduled notification. Unknown IDs are ignored.
	CancelScheduled(ctx context.Context, notificationID string) error

	// DispatchDue delivers scheduled notifications whose time has come and
	// returns how many were sent.
	DispatchDue(ctx context.Context, now time.Time) (int, error)
}
