package dto

import (
	"time"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
)

// ScheduleRemindersRequest represents POST /reminders/schedule.
// Frequency and StartDate default to the user's preference and today.
type ScheduleRemindersRequest struct {
	Frequency string `json:"frequency"`
	StartDate string `json:"start_date"`
}

// CustomReminderRequest represents POST /reminders. Date defaults to today.
type CustomReminderRequest struct {
	Date    string  `json:"date"`
	Message string  `json:"message"`
	AssetID *string `json:"asset_id"`
}

// SnoozeReminderRequest represents POST /reminders/:id/snooze.
type SnoozeReminderRequest struct {
	Until time.Time `json:"until" binding:"required"`
}

// ReminderResponse represents a reminder in API responses.
type ReminderResponse struct {
	ID            string            `json:"id"`
	AssetID       *string           `json:"asset_id,omitempty"`
	Type          string            `json:"type"`
	ScheduledDate HijriDateResponse `json:"scheduled_date"`
	Status        string            `json:"status"`
	Message       string            `json:"message"`
	SnoozedUntil  *time.Time        `json:"snoozed_until,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ToReminderResponse converts a domain Reminder entity.
func ToReminderResponse(r *entity.Reminder) ReminderResponse {
	resp := ReminderResponse{
		ID:            r.ID.String(),
		Type:          string(r.Type),
		ScheduledDate: ToHijriDateResponse(r.ScheduledDate),
		Status:        string(r.Status),
		Message:       r.Message,
		SnoozedUntil:  r.SnoozedUntil,
		CreatedAt:     r.CreatedAt,
	}
	if r.AssetID != nil {
		id := r.AssetID.String()
		resp.AssetID = &id
	}
	return resp
}

// ToReminderResponses converts a slice of reminders.
func ToReminderResponses(reminders []*entity.Reminder) []ReminderResponse {
	out := make([]ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, ToReminderResponse(r))
	}
	return out
}

// NotificationResponse is a delivered push notification.
type NotificationResponse struct {
	ID    string            `json:"id,omitempty"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// ToNotificationResponses converts inbox entries.
func ToNotificationResponses(items []adapter.PushNotification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, NotificationResponse{ID: n.ID, Title: n.Title, Body: n.Body, Data: n.Data})
	}
	return out
}
