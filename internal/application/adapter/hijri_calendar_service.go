// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// HijriCalendarService defines the interface for Hijri calendar lookups.
type HijriCalendarService interface {
	// CurrentDate returns today's Hijri date.
	CurrentDate(ctx context.Context) (valueobject.HijriDate, error)

	// ToHijri converts a Gregorian instant.
	ToHijri(ctx context.Context, t time.Time) (valueobject.HijriDate, error)

	// ToGregorian converts a Hijri date to the start of its Gregorian day in UTC.
	ToGregorian(ctx context.Context, date valueobject.HijriDate) (time.Time, error)

	// RamadanStart returns the first day of Ramadan in the given Hijri year.
	RamadanStart(ctx context.Context, hijriYear int) (valueobject.HijriDate, error)

	// DaysBetween estimates the days from start to end.
	DaysBetween(ctx context.Context, start, end valueobject.HijriDate) (float64, error)
}
