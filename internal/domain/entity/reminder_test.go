package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

func newTestReminder() *Reminder {
	return NewReminder(uuid.New(), nil, ReminderTypeCustom, valueobject.MustHijriDate(1446, 9, 1), "pay zakat")
}

func TestReminder_Transitions(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(r *Reminder)
		act     func(r *Reminder) error
		want    ReminderStatus
		wantErr bool
	}{
		{
			name: "pending to sent",
			act:  func(r *Reminder) error { return r.MarkAsSent() },
			want: ReminderStatusSent,
		},
		{
			name:    "sent cannot be sent again",
			setup:   func(r *Reminder) { _ = r.MarkAsSent() },
			act:     func(r *Reminder) error { return r.MarkAsSent() },
			want:    ReminderStatusSent,
			wantErr: true,
		},
		{
			name:    "snoozed cannot be sent",
			setup:   func(r *Reminder) { _ = r.Snooze(now) },
			act:     func(r *Reminder) error { return r.MarkAsSent() },
			want:    ReminderStatusSnoozed,
			wantErr: true,
		},
		{
			name:  "snoozed can be snoozed again",
			setup: func(r *Reminder) { _ = r.Snooze(now) },
			act:   func(r *Reminder) error { return r.Snooze(now.Add(time.Hour)) },
			want:  ReminderStatusSnoozed,
		},
		{
			name:    "dismissed cannot be snoozed",
			setup:   func(r *Reminder) { r.Dismiss() },
			act:     func(r *Reminder) error { return r.Snooze(now) },
			want:    ReminderStatusDismissed,
			wantErr: true,
		},
		{
			name:  "sent can be dismissed",
			setup: func(r *Reminder) { _ = r.MarkAsSent() },
			act:   func(r *Reminder) error { r.Dismiss(); return nil },
			want:  ReminderStatusDismissed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReminder()
			if tt.setup != nil {
				tt.setup(r)
			}
			err := tt.act(r)
			if tt.wantErr && !errors.Is(err, domainerror.ErrInvalidReminderTransition) {
				t.Errorf("expected ErrInvalidReminderTransition, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if r.Status != tt.want {
				t.Errorf("expected status %s, got %s", tt.want, r.Status)
			}
		})
	}
}

func TestReminder_RescheduleClearsSnooze(t *testing.T) {
	r := newTestReminder()
	until := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	_ = r.Snooze(until)
	r.Dismiss()

	next := valueobject.MustHijriDate(1446, 10, 1)
	r.Reschedule(next)

	if r.Status != ReminderStatusPending || r.SnoozedUntil != nil || !r.ScheduledDate.Equals(next) {
		t.Errorf("unexpected state after reschedule: %+v", r)
	}
}

func TestReminder_IsDue(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	pending := newTestReminder()
	if !pending.IsDue(now) {
		t.Error("pending reminder without snooze must be due")
	}

	snoozed := newTestReminder()
	_ = snoozed.Snooze(now.Add(time.Hour))
	if snoozed.IsDue(now.Add(2 * time.Hour)) {
		t.Error("snoozed reminders are never due until rescheduled")
	}

	pendingWithDeadline := newTestReminder()
	future := now.Add(time.Hour)
	pendingWithDeadline.SnoozedUntil = &future
	if pendingWithDeadline.IsDue(now) {
		t.Error("pending reminder must wait for its snooze deadline")
	}
	if !pendingWithDeadline.IsDue(now.Add(2 * time.Hour)) {
		t.Error("pending reminder must be due once the deadline passed")
	}

	sent := newTestReminder()
	_ = sent.MarkAsSent()
	if sent.IsDue(now) {
		t.Error("sent reminder must not be due")
	}
}
