package adapters

import (
	"context"
	"time"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

const ramadanMonth = 9

// ApproximateHijriCalendar implements the calendar with the domain's linear
// approximation. It does not observe the moon.
type ApproximateHijriCalendar struct {
	now func() time.Time
}

var _ adapter.HijriCalendarService = (*ApproximateHijriCalendar)(nil)

// NewApproximateHijriCalendar creates a calendar on the system clock.
func NewApproximateHijriCalendar() *ApproximateHijriCalendar {
	return &ApproximateHijriCalendar{now: time.Now}
}

// CurrentDate returns today's approximate Hijri date.
func (c *ApproximateHijriCalendar) CurrentDate(ctx context.Context) (valueobject.HijriDate, error) {
	return c.ToHijri(ctx, c.now())
}

// ToHijri converts a Gregorian instant.
func (c *ApproximateHijriCalendar) ToHijri(_ context.Context, t time.Time) (valueobject.HijriDate, error) {
	return valueobject.TodayFrom(t), nil
}

// ToGregorian inverts ToHijri: the year is 622 + year / 1.030684 rounded up
// to the first Gregorian year that maps back to it, with month and day kept.
func (c *ApproximateHijriCalendar) ToGregorian(_ context.Context, date valueobject.HijriDate) (time.Time, error) {
	year := valueobject.HijriEpochGregorianYear + int(float64(date.Year())/valueobject.GregorianToHijriFactor)
	for valueobject.TodayFrom(time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)).Year() < date.Year() {
		year++
	}
	return time.Date(year, time.Month(date.Month()), date.Day(), 0, 0, 0, 0, time.UTC), nil
}

// RamadanStart returns the first of Ramadan in the given year.
func (c *ApproximateHijriCalendar) RamadanStart(_ context.Context, hijriYear int) (valueobject.HijriDate, error) {
	return valueobject.NewHijriDate(hijriYear, ramadanMonth, 1)
}

// DaysBetween estimates the days from start to end.
func (c *ApproximateHijriCalendar) DaysBetween(_ context.Context, start, end valueobject.HijriDate) (float64, error) {
	return start.ApproximateDaysUntil(end), nil
}
