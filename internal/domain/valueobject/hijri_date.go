package valueobject

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
)

// Approximation constants shared by hawl and reminder scheduling.
// They are deliberately coarse and must stay stable across releases.
const (
	// GregorianToHijriFactor converts elapsed Gregorian years since 622 CE into Hijri years.
	GregorianToHijriFactor = 1.030684
	// HijriEpochGregorianYear is the Gregorian year of the Hijra.
	HijriEpochGregorianYear = 622
	// DaysPerLunarYear approximates a lunar year.
	DaysPerLunarYear = 354.0
	// DaysPerLunarMonth approximates a lunar month.
	DaysPerLunarMonth = 29.5
	// MaxHijriDay is the day ceiling applied to every month.
	MaxHijriDay = 30
)

var hijriDatePattern = regexp.MustCompile(`^(\d+)-(\d{2})-(\d{2})H$`)

var hijriMonthNames = [12]string{
	"Muharram",
	"Safar",
	"Rabi al-Awwal",
	"Rabi al-Thani",
	"Jumada al-Awwal",
	"Jumada al-Thani",
	"Rajab",
	"Shaban",
	"Ramadan",
	"Shawwal",
	"Dhul Qadah",
	"Dhul Hijjah",
}

// HijriDate is an immutable date in the Islamic lunar calendar.
// Every month is treated as having at most 30 days.
type HijriDate struct {
	year  int
	month int
	day   int
}

// NewHijriDate validates year >= 1, month in [1,12] and day in [1,30].
func NewHijriDate(year, month, day int) (HijriDate, error) {
	if month < 1 || month > 12 {
		return HijriDate{}, invalidHijriDate("month must be between 1 and 12")
	}
	if day < 1 || day > MaxHijriDay {
		return HijriDate{}, invalidHijriDate("day must be between 1 and 30")
	}
	if year < 1 {
		return HijriDate{}, invalidHijriDate("year must be positive")
	}
	return HijriDate{year: year, month: month, day: day}, nil
}

// MustHijriDate is NewHijriDate for literals known to be valid. It panics otherwise.
func MustHijriDate(year, month, day int) HijriDate {
	d, err := NewHijriDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseHijriDate parses the YYYY-MM-DDH form produced by String.
func ParseHijriDate(value string) (HijriDate, error) {
	match := hijriDatePattern.FindStringSubmatch(value)
	if match == nil {
		return HijriDate{}, domainerror.NewZakatError(
			domainerror.ErrCodeInvalidHijriDate,
			"cannot parse hijri date "+value,
			domainerror.ErrInvalidHijriDateFormat,
		)
	}
	year, err := strconv.Atoi(match[1])
	if err != nil {
		return HijriDate{}, domainerror.NewZakatError(
			domainerror.ErrCodeInvalidHijriDate,
			"cannot parse hijri year "+match[1],
			domainerror.ErrInvalidHijriDateFormat,
		)
	}
	month, _ := strconv.Atoi(match[2])
	day, _ := strconv.Atoi(match[3])
	return NewHijriDate(year, month, day)
}

// Today returns the approximate Hijri date for the current local time.
func Today() HijriDate {
	return TodayFrom(time.Now())
}

// TodayFrom converts a Gregorian instant with the fixed linear factor:
// the year is floor((gregorianYear - 622) * 1.030684) and the Gregorian
// month and day are carried over unchanged. Day 31 is clamped to 30.
func TodayFrom(t time.Time) HijriDate {
	year := int(math.Floor(float64(t.Year()-HijriEpochGregorianYear) * GregorianToHijriFactor))
	if year < 1 {
		year = 1
	}
	day := t.Day()
	if day > MaxHijriDay {
		day = MaxHijriDay
	}
	return HijriDate{year: year, month: int(t.Month()), day: day}
}

// Year returns the Hijri year.
func (d HijriDate) Year() int { return d.year }

// Month returns the Hijri month, 1-12.
func (d HijriDate) Month() int { return d.month }

// Day returns the day of month, 1-30.
func (d HijriDate) Day() int { return d.day }

// IsZero reports whether the date was never set.
func (d HijriDate) IsZero() bool {
	return d.year == 0
}

// AddLunarYear shifts the date by n lunar years.
func (d HijriDate) AddLunarYear(n int) (HijriDate, error) {
	return NewHijriDate(d.year+n, d.month, d.day)
}

// AddLunarMonths shifts the date by n lunar months, rolling over into the year.
func (d HijriDate) AddLunarMonths(n int) (HijriDate, error) {
	total := d.month + n - 1
	yearShift := floorDiv(total, 12)
	month := total - yearShift*12 + 1
	return NewHijriDate(d.year+yearShift, month, d.day)
}

// IsAfter compares (year, month, day) lexicographically.
func (d HijriDate) IsAfter(other HijriDate) bool {
	if d.year != other.year {
		return d.year > other.year
	}
	if d.month != other.month {
		return d.month > other.month
	}
	return d.day > other.day
}

// IsAfterOrEqual reports d >= other.
func (d HijriDate) IsAfterOrEqual(other HijriDate) bool {
	return d.IsAfter(other) || d.Equals(other)
}

// IsBefore reports d < other.
func (d HijriDate) IsBefore(other HijriDate) bool {
	return !d.IsAfterOrEqual(other)
}

// Equals reports whether both dates denote the same day.
func (d HijriDate) Equals(other HijriDate) bool {
	return d.year == other.year && d.month == other.month && d.day == other.day
}

// MonthName returns the transliterated month name.
func (d HijriDate) MonthName() string {
	return hijriMonthNames[d.month-1]
}

// String renders "1446-03-15H".
func (d HijriDate) String() string {
	return fmt.Sprintf("%d-%02d-%02dH", d.year, d.month, d.day)
}

// ApproximateDaysUntil estimates the days from d to other using
// 354 days per year and 29.5 days per month. The result is negative
// when other precedes d.
func (d HijriDate) ApproximateDaysUntil(other HijriDate) float64 {
	yearDiff := float64(other.year - d.year)
	monthDiff := float64(other.month - d.month)
	dayDiff := float64(other.day - d.day)
	return yearDiff*DaysPerLunarYear + monthDiff*DaysPerLunarMonth + dayDiff
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func invalidHijriDate(message string) error {
	return domainerror.NewZakatError(
		domainerror.ErrCodeInvalidHijriDate,
		message,
		domainerror.ErrInvalidHijriDate,
	)
}
