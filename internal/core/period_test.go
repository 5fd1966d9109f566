package core

import (
	"testing"
	"time"
)

func TestMonthPeriod(t *testing.T) {
	now := time.Date(2024, 2, 17, 15, 0, 0, 0, time.UTC)
	p := MonthPeriod(now)
	if p.From.String() != "2024-02-01" || p.To.String() != "2024-02-29" {
		t.Fatalf("got %s..%s", p.From, p.To)
	}
	if !p.Contains(NewDate(2024, 2, 29)) || p.Contains(NewDate(2024, 3, 1)) {
		t.Fatal("bounds must be inclusive and end on the last day")
	}
}

func TestTrailingDaysIsOpenEnded(t *testing.T) {
	now := time.Date(2026, 3, 31, 9, 0, 0, 0, time.UTC)
	p := TrailingDays(now, 30)
	if p.From.String() != "2026-03-01" {
		t.Fatalf("from = %s", p.From)
	}
	if !p.To.IsZero() {
		t.Fatalf("trailing period should have no upper bound")
	}
	if p.Contains(NewDate(2026, 2, 28)) {
		t.Fatal("date before the window must be excluded")
	}
	if !p.Contains(NewDate(2026, 4, 2)) {
		t.Fatal("future dates are inside an open-ended window")
	}
}

func TestPeriodForRange(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		from, to string
	}{
		{RangeAllTime, "", ""},
		{RangeLast30Days, "2026-02-08", ""},
		{RangeLastMonth, "2026-02-01", "2026-02-28"},
		{RangeCurrentYear, "2026-01-01", "2026-12-31"},
		{"bogus", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := PeriodForRange(tt.name, now).Bounds()
			if from != tt.from || to != tt.to {
				t.Errorf("got %q..%q, want %q..%q", from, to, tt.from, tt.to)
			}
		})
	}
}

func TestAllTimeContainsEverything(t *testing.T) {
	p := AllTime()
	if !p.IsUnbounded() {
		t.Fatal("AllTime must be unbounded")
	}
	if !p.Contains(NewDate(1970, 1, 1)) || !p.Contains(NewDate(2999, 12, 31)) {
		t.Fatal("AllTime must contain any date")
	}
}

func TestMonthlyAmountLabel(t *testing.T) {
	m := MonthlyAmount{Year: 2026, Month: 1}
	if m.Label() != "January 2026" {
		t.Fatalf("label = %q", m.Label())
	}
}

func TestExpensePagePages(t *testing.T) {
	p := ExpensePage{Total: 21, Page: 2, PerPage: 10}
	if p.Pages() != 3 || !p.HasPrev() || !p.HasNext() {
		t.Fatalf("unexpected paging: pages=%d", p.Pages())
	}
	empty := ExpensePage{PerPage: 10, Page: 1}
	if empty.Pages() != 1 || empty.HasNext() {
		t.Fatal("empty listing has exactly one page")
	}
}
