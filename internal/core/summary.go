package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// DailyAmount is the total spent on one date.
type DailyAmount struct {
	Date   Date
	Amount Money
}

// MonthlyAmount is the total spent in one calendar month.
type MonthlyAmount struct {
	Year   int
	Month  int // 1-12
	Amount Money
}

// Label renders the month as "March 2026".
func (m MonthlyAmount) Label() string {
	return NewDate(m.Year, m.Month, 1).Format("January 2006")
}

// CategoryStats is a category total with its expense count.
type CategoryStats struct {
	Name   string
	Amount Money
	Count  int
}

// DashboardStats feeds the dashboard JSON endpoint.
type DashboardStats struct {
	MonthlyTotal      Money
	RecentTotal       Money
	CategoryBreakdown []CategoryAmount
	DailyExpenses     []DailyAmount
}

// Overview feeds the dashboard page.
type Overview struct {
	Total          Money
	RecentTotal    Money
	Breakdown      []CategoryAmount
	RecentExpenses []Expense
	ExpenseCount   int
}

// ExpenseFilter narrows an expense listing. Zero values disable a filter.
type ExpenseFilter struct {
	CategoryID    int64
	SubcategoryID int64
	AmountMin     Money
	AmountMax     Money
	Period        Period
	Search        string
	Page          int
	PerPage       int
}

// ExpensePage is one page of a filtered listing.
type ExpensePage struct {
	Items   []Expense
	Total   int
	Page    int
	PerPage int
}

// Pages returns the number of pages, at least 1.
func (p ExpensePage) Pages() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

func (p ExpensePage) HasPrev() bool { return p.Page > 1 }
func (p ExpensePage) HasNext() bool { return p.Page < p.Pages() }
