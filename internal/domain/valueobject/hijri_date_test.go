package valueobject

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
)

func TestNewHijriDate_Validation(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		wantErr          bool
	}{
		{name: "valid", year: 1446, month: 3, day: 15},
		{name: "day 30 allowed in every month", year: 1446, month: 12, day: 30},
		{name: "month zero", year: 1446, month: 0, day: 1, wantErr: true},
		{name: "month 13", year: 1446, month: 13, day: 1, wantErr: true},
		{name: "day zero", year: 1446, month: 1, day: 0, wantErr: true},
		{name: "day 31", year: 1446, month: 1, day: 31, wantErr: true},
		{name: "year zero", year: 0, month: 1, day: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHijriDate(tt.year, tt.month, tt.day)
			if tt.wantErr {
				if !errors.Is(err, domainerror.ErrInvalidHijriDate) {
					t.Errorf("expected ErrInvalidHijriDate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestHijriDate_AddLunarYear(t *testing.T) {
	d := MustHijriDate(1445, 9, 10)

	for n := 1; n <= 5; n++ {
		next, err := d.AddLunarYear(n)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !next.IsAfter(d) {
			t.Errorf("expected %s to be after %s", next, d)
		}
	}

	next, _ := d.AddLunarYear(1)
	if !next.Equals(MustHijriDate(1446, 9, 10)) {
		t.Errorf("expected 1446-09-10H, got %s", next)
	}
}

func TestHijriDate_AddLunarMonths(t *testing.T) {
	tests := []struct {
		name  string
		start HijriDate
		n     int
		want  HijriDate
	}{
		{name: "zero months", start: MustHijriDate(1445, 5, 1), n: 0, want: MustHijriDate(1445, 5, 1)},
		{name: "within year", start: MustHijriDate(1445, 5, 1), n: 3, want: MustHijriDate(1445, 8, 1)},
		{name: "rolls into next year", start: MustHijriDate(1445, 11, 20), n: 3, want: MustHijriDate(1446, 2, 20)},
		{name: "exactly twelve", start: MustHijriDate(1445, 12, 1), n: 12, want: MustHijriDate(1446, 12, 1)},
		{name: "backwards across year", start: MustHijriDate(1445, 1, 1), n: -1, want: MustHijriDate(1444, 12, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddLunarMonths(tt.n)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestHijriDate_Ordering(t *testing.T) {
	a := MustHijriDate(1445, 6, 10)
	b := MustHijriDate(1445, 6, 11)

	if !b.IsAfter(a) || a.IsAfter(b) {
		t.Error("day ordering broken")
	}
	if !a.IsBefore(b) || b.IsBefore(a) {
		t.Error("IsBefore broken")
	}
	if !a.IsAfterOrEqual(a) || a.IsAfter(a) {
		t.Error("equal dates must be after-or-equal but not after")
	}
	if !MustHijriDate(1446, 1, 1).IsAfter(MustHijriDate(1445, 12, 30)) {
		t.Error("year must dominate month and day")
	}
}

func TestHijriDate_StringRoundTrip(t *testing.T) {
	dates := []HijriDate{
		MustHijriDate(1, 1, 1),
		MustHijriDate(1446, 3, 15),
		MustHijriDate(1500, 12, 30),
	}
	for _, d := range dates {
		parsed, err := ParseHijriDate(d.String())
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", d, err)
		}
		if !parsed.Equals(d) {
			t.Errorf("expected %s, got %s", d, parsed)
		}
	}

	if got := MustHijriDate(1446, 3, 5).String(); got != "1446-03-05H" {
		t.Errorf("expected 1446-03-05H, got %s", got)
	}

	for _, bad := range []string{"1446-3-15H", "1446-03-15", "abc", "1446-13-01H"} {
		if _, err := ParseHijriDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestTodayFrom(t *testing.T) {
	got := TodayFrom(time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))
	// floor((2024 - 622) * 1.030684) = floor(1445.019...) = 1445
	if !got.Equals(MustHijriDate(1445, 3, 15)) {
		t.Errorf("expected 1445-03-15H, got %s", got)
	}

	clamped := TodayFrom(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC))
	if clamped.Day() != 30 {
		t.Errorf("expected day 31 to clamp to 30, got %d", clamped.Day())
	}
}

func TestHijriDate_ApproximateDaysUntil(t *testing.T) {
	from := MustHijriDate(1445, 1, 1)
	to := MustHijriDate(1446, 2, 3)

	if got := from.ApproximateDaysUntil(to); got != 354+29.5+2 {
		t.Errorf("expected 385.5, got %v", got)
	}
	if got := to.ApproximateDaysUntil(from); got >= 0 {
		t.Errorf("expected a negative estimate, got %v", got)
	}
}
