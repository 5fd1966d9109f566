package core

import "time"

// Period is an inclusive date range. A zero bound leaves that side open.
type Period struct {
	From Date
	To   Date
}

// Date range preference values.
const (
	RangeAllTime     = "all_time"
	RangeLast30Days  = "last_30_days"
	RangeLastMonth   = "last_month"
	RangeCurrentYear = "current_year"
)

// AllTime is the unbounded period.
func AllTime() Period {
	return Period{}
}

// MonthPeriod covers the calendar month of t.
func MonthPeriod(t time.Time) Period {
	first := NewDate(t.Year(), int(t.Month()), 1)
	return Period{From: first, To: Date{Time: first.AddDate(0, 1, -1)}}
}

// TrailingDays starts n days before now's date and is open-ended.
func TrailingDays(now time.Time, n int) Period {
	return Period{From: DateOf(now).AddDays(-n)}
}

// CustomPeriod covers [from, to].
func CustomPeriod(from, to Date) Period {
	return Period{From: from, To: to}
}

// PeriodForRange maps a date range preference to a Period relative to now.
// Unknown names fall back to AllTime.
func PeriodForRange(name string, now time.Time) Period {
	switch name {
	case RangeLast30Days:
		return TrailingDays(now, 30)
	case RangeLastMonth:
		return MonthPeriod(now.AddDate(0, 0, -now.Day()))
	case RangeCurrentYear:
		return Period{From: NewDate(now.Year(), 1, 1), To: NewDate(now.Year(), 12, 31)}
	default:
		return AllTime()
	}
}

// IsUnbounded reports whether both sides are open.
func (p Period) IsUnbounded() bool {
	return p.From.IsZero() && p.To.IsZero()
}

// Contains reports whether d falls inside the period.
func (p Period) Contains(d Date) bool {
	if !p.From.IsZero() && d.Before(p.From.Time) {
		return false
	}
	if !p.To.IsZero() && d.After(p.To.Time) {
		return false
	}
	return true
}

// Bounds returns the YYYY-MM-DD bounds, empty for open sides.
func (p Period) Bounds() (from, to string) {
	return p.From.String(), p.To.String()
}
