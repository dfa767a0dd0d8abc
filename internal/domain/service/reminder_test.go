package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

func TestSubtractDays(t *testing.T) {
	tests := []struct {
		name string
		date valueobject.HijriDate
		days int
		want valueobject.HijriDate
	}{
		{name: "same month", date: valueobject.MustHijriDate(1446, 5, 20), days: 7, want: valueobject.MustHijriDate(1446, 5, 13)},
		{name: "previous month", date: valueobject.MustHijriDate(1446, 5, 3), days: 7, want: valueobject.MustHijriDate(1446, 4, 25)},
		{name: "previous year", date: valueobject.MustHijriDate(1446, 1, 1), days: 14, want: valueobject.MustHijriDate(1445, 12, 16)},
		{name: "exactly to zero", date: valueobject.MustHijriDate(1446, 3, 7), days: 7, want: valueobject.MustHijriDate(1446, 2, 29)},
		{name: "two months", date: valueobject.MustHijriDate(1446, 3, 5), days: 40, want: valueobject.MustHijriDate(1446, 1, 23)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SubtractDays(tt.date, tt.days)
			require.NoError(t, err)
			assert.True(t, got.Equals(tt.want), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestReminderService_CreateHawlCompletionReminder(t *testing.T) {
	svc := NewReminderService()
	a := cash(t, uuid.New(), "1000", valueobject.MustHijriDate(1445, 9, 10))

	r, err := svc.CreateHawlCompletionReminder(a.UserID, a, DefaultHawlReminderDaysBefore)
	require.NoError(t, err)

	assert.Equal(t, entity.ReminderTypeHawlCompletion, r.Type)
	assert.Equal(t, entity.ReminderStatusPending, r.Status)
	require.NotNil(t, r.AssetID)
	assert.Equal(t, a.ID, *r.AssetID)
	assert.True(t, r.ScheduledDate.Equals(valueobject.MustHijriDate(1446, 9, 3)))
	assert.Contains(t, r.Message, "1446-09-10H")
}

func TestReminderService_CreatePreRamadanReminder(t *testing.T) {
	svc := NewReminderService()

	r, err := svc.CreatePreRamadanReminder(uuid.New(), valueobject.MustHijriDate(1446, 9, 1), DefaultPreRamadanDaysBefore)
	require.NoError(t, err)

	assert.Equal(t, entity.ReminderTypePreRamadan, r.Type)
	assert.Nil(t, r.AssetID)
	assert.True(t, r.ScheduledDate.Equals(valueobject.MustHijriDate(1446, 8, 16)))
}

func TestReminderService_CreateNisabThresholdAlert(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC) }
	svc := NewReminderServiceWithClock(clock)

	r := svc.CreateNisabThresholdAlert(uuid.New(), "your wealth crossed the nisab")
	assert.Equal(t, entity.ReminderTypeNisabThreshold, r.Type)
	assert.True(t, r.ScheduledDate.Equals(valueobject.MustHijriDate(1445, 3, 15)))
}

func TestReminderService_ProcessUserReminders(t *testing.T) {
	svc := NewReminderService()
	user := entity.NewUser("u@example.com", "U", "h", valueobject.USD, valueobject.NisabMethodGold)
	now := valueobject.MustHijriDate(1446, 6, 1)

	soon := cash(t, user.ID, "100", valueobject.MustHijriDate(1445, 6, 5))
	today := cash(t, user.ID, "100", valueobject.MustHijriDate(1445, 6, 1))
	far := cash(t, user.ID, "100", valueobject.MustHijriDate(1445, 7, 1))
	paid := cash(t, user.ID, "100", valueobject.MustHijriDate(1445, 6, 3))
	require.NoError(t, paid.MarkZakatAsPaid(1446, usd(t, "2.5"), time.Now()))

	reminders, err := svc.ProcessUserReminders(user, []*entity.Asset{soon, today, far, paid}, now)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, soon.ID, *reminders[0].AssetID)

	user.NotificationPreferences.HawlCompletionReminder = false
	reminders, err = svc.ProcessUserReminders(user, []*entity.Asset{soon}, now)
	require.NoError(t, err)
	assert.Empty(t, reminders)
}

func TestReminderService_ScheduleRecurringReminders(t *testing.T) {
	svc := NewReminderService()
	start := valueobject.MustHijriDate(1446, 11, 10)

	tests := []struct {
		frequency entity.ReminderFrequency
		want      []valueobject.HijriDate
	}{
		{
			frequency: entity.ReminderFrequencyMonthly,
			want: []valueobject.HijriDate{
				valueobject.MustHijriDate(1446, 11, 10),
				valueobject.MustHijriDate(1446, 12, 10),
				valueobject.MustHijriDate(1447, 1, 10),
				valueobject.MustHijriDate(1447, 2, 10),
			},
		},
		{
			frequency: entity.ReminderFrequencyQuarterly,
			want: []valueobject.HijriDate{
				valueobject.MustHijriDate(1446, 11, 10),
				valueobject.MustHijriDate(1447, 2, 10),
				valueobject.MustHijriDate(1447, 5, 10),
				valueobject.MustHijriDate(1447, 8, 10),
			},
		},
		{
			frequency: entity.ReminderFrequencyWeekly,
			want:      []valueobject.HijriDate{start, start, start, start},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			reminders, err := svc.ScheduleRecurringReminders(uuid.New(), tt.frequency, start)
			require.NoError(t, err)
			require.Len(t, reminders, RecurringReminderCount)
			for i, r := range reminders {
				assert.Equal(t, entity.ReminderTypeCustom, r.Type)
				assert.True(t, r.ScheduledDate.Equals(tt.want[i]), "reminder %d: expected %s, got %s", i, tt.want[i], r.ScheduledDate)
			}
		})
	}

	_, err := svc.ScheduleRecurringReminders(uuid.New(), "daily", start)
	assert.ErrorIs(t, err, domainerror.ErrInvalidReminderFrequency)
}
