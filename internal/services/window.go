package services

import "time"

const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// Window is a half-open time range [Start, End). A zero End means the
// window is unbounded above, matching the trailing-range queries that only
// constrain the start.
type Window struct {
	Start time.Time
	End   time.Time
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WindowFor maps a named period onto a concrete range anchored at the
// server's current date. today is the current calendar day; week and month
// are trailing ranges of 7 and 30 days measured from the start of today.
// Unknown periods fall back to week, as the original API did.
func WindowFor(period string, now time.Time) Window {
	today := startOfDay(now)
	switch period {
	case PeriodToday:
		return Window{Start: today, End: today.AddDate(0, 0, 1)}
	case PeriodMonth:
		return Window{Start: today.AddDate(0, 0, -30)}
	case PeriodWeek:
		return Window{Start: today.AddDate(0, 0, -7)}
	default:
		return Window{Start: today.AddDate(0, 0, -7)}
	}
}

// sameCalendarDay compares only the date components. A value scanned from
// a date column carries UTC midnight, so comparing instants would miss the
// server's local day on any non-UTC host.
func sameCalendarDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// upcomingWindow covers [today, today+7d] inclusive of both endpoint days.
func upcomingWindow(now time.Time) Window {
	today := startOfDay(now)
	return Window{Start: today, End: today.AddDate(0, 0, 8)}
}
