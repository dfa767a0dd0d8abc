package entity

import (
	"errors"
	"testing"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

func TestNewUser_DefaultPreferences(t *testing.T) {
	u := NewUser("a@example.com", "Aisha", "hash", valueobject.USD, valueobject.NisabMethodGold)

	p := u.NotificationPreferences
	if !p.EnablePush || !p.EnableEmail || p.EnableSMS {
		t.Errorf("unexpected channel defaults: %+v", p)
	}
	if p.ReminderFrequency != ReminderFrequencyMonthly {
		t.Errorf("expected monthly, got %s", p.ReminderFrequency)
	}
	if !p.PreRamadanReminder || !p.HawlCompletionReminder || !p.NisabThresholdAlert {
		t.Errorf("expected all reminders enabled: %+v", p)
	}
}

func TestUser_Updates(t *testing.T) {
	u := NewUser("a@example.com", "Aisha", "hash", valueobject.USD, valueobject.NisabMethodGold)

	u.UpdateProfile("Aisha K", valueobject.SAR)
	u.UpdateNisabMethod(valueobject.NisabMethodSilver)
	prefs := u.NotificationPreferences
	prefs.EnableEmail = false
	u.UpdateNotificationPreferences(prefs)

	if u.Name != "Aisha K" || u.Currency != valueobject.SAR || u.NisabMethod != valueobject.NisabMethodSilver {
		t.Errorf("profile not updated: %+v", u)
	}
	if u.NotificationPreferences.EnableEmail {
		t.Error("preferences not updated")
	}
}

func TestParseReminderFrequency(t *testing.T) {
	f, err := ParseReminderFrequency("Quarterly")
	if err != nil || f != ReminderFrequencyQuarterly {
		t.Errorf("expected quarterly, got %s, %v", f, err)
	}
	if _, err := ParseReminderFrequency("daily"); !errors.Is(err, domainerror.ErrInvalidReminderFrequency) {
		t.Errorf("expected ErrInvalidReminderFrequency, got %v", err)
	}
}

func TestLiability_IsDeductible(t *testing.T) {
	u := NewUser("a@example.com", "A", "h", valueobject.USD, valueobject.NisabMethodGold)
	l := NewLiability(u.ID, money(t, "200"), "card", nil, false)

	if l.IsDeductible() {
		t.Error("liability not immediately due must not be deductible")
	}
	l.MarkAsImmediatelyDue()
	if !l.IsDeductible() {
		t.Error("liability marked immediately due must be deductible")
	}
}
