package services

import (
	"testing"
	"time"
)

func TestWindowFor_Today(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	w := WindowFor(PeriodToday, now)

	wantStart := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	if !w.Start.Equal(wantStart) {
		t.Errorf("Expected start %v, got %v", wantStart, w.Start)
	}
	if !w.End.Equal(wantEnd) {
		t.Errorf("Expected end %v, got %v", wantEnd, w.End)
	}
}

func TestWindowFor_Week(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	w := WindowFor(PeriodWeek, now)

	wantStart := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("Expected start %v, got %v", wantStart, w.Start)
	}
	if !w.End.IsZero() {
		t.Errorf("Expected unbounded end, got %v", w.End)
	}
}

func TestWindowFor_Month(t *testing.T) {
	now := time.Date(2026, 3, 14, 0, 0, 1, 0, time.UTC)
	w := WindowFor(PeriodMonth, now)

	wantStart := time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("Expected start %v, got %v", wantStart, w.Start)
	}
}

func TestWindowFor_UnknownFallsBackToWeek(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	got := WindowFor("quincena", now)
	want := WindowFor(PeriodWeek, now)

	if !got.Start.Equal(want.Start) || !got.End.Equal(want.End) {
		t.Errorf("Expected unknown period to match week window, got %+v want %+v", got, want)
	}
}

func TestUpcomingWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	w := upcomingWindow(now)

	wantStart := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC)

	if !w.Start.Equal(wantStart) {
		t.Errorf("Expected start %v, got %v", wantStart, w.Start)
	}
	if !w.End.Equal(wantEnd) {
		t.Errorf("Expected end %v, got %v", wantEnd, w.End)
	}
}

func TestSameCalendarDay(t *testing.T) {
	bogota := time.FixedZone("UTC-5", -5*3600)

	cases := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{
			"utc midnight matches local afternoon of the same date",
			time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 14, 15, 30, 0, 0, bogota),
			true,
		},
		{
			"same instant",
			time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
			true,
		},
		{
			"adjacent days differ",
			time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 15, 0, 0, 0, 0, bogota),
			false,
		},
		{
			"same weekday across months differs",
			time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC),
			false,
		},
	}

	for _, tc := range cases {
		if got := sameCalendarDay(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestStartOfDay_PreservesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2026, 3, 14, 1, 30, 0, 0, loc)

	got := startOfDay(now)
	if got.Location() != loc {
		t.Errorf("Expected location %v, got %v", loc, got.Location())
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Errorf("Expected midnight, got %v", got)
	}
	if got.Day() != 14 {
		t.Errorf("Expected same calendar day, got day %d", got.Day())
	}
}
