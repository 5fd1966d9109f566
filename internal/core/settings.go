package core

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// UserSettings holds per-user display preferences.
type UserSettings struct {
	ID                 int64
	UserID             int64
	CurrencySymbol     string
	CurrencyCode       string
	DecimalPlaces      int
	Theme              string
	PrimaryColor       string
	SecondaryColor     string
	DefaultDateRange   string
	ChartType          string
	EmailNotifications bool
	MonthlyReports     bool
	ItemsPerPage       int
	DateFormat         string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

const (
	ChartPie      = "pie"
	ChartBar      = "bar"
	ChartDoughnut = "doughnut"
)

// CurrencySymbols maps the supported currency codes to their symbols.
var CurrencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"JPY": "¥",
	"CNY": "¥",
	"CAD": "C$",
	"AUD": "A$",
}

// CurrencyCodes lists the supported currency codes in display order.
var CurrencyCodes = []string{"USD", "EUR", "GBP", "INR", "JPY", "CNY", "CAD", "AUD"}

var (
	Themes     = []string{"light", "dark", "auto"}
	DateRanges = []string{RangeAllTime, RangeLast30Days, RangeLastMonth, RangeCurrentYear}
	ChartTypes = []string{ChartPie, ChartBar, ChartDoughnut}
	PageSizes  = []int{5, 10, 25, 50, 100}

	// DateFormats lists the supported date format preferences in display order.
	DateFormats = []string{"%Y-%m-%d", "%d/%m/%Y", "%m/%d/%Y", "%d-%b-%Y", "%B %d, %Y"}

	dateLayouts = map[string]string{
		"%Y-%m-%d":  "2006-01-02",
		"%d/%m/%Y":  "02/01/2006",
		"%m/%d/%Y":  "01/02/2006",
		"%d-%b-%Y":  "02-Jan-2006",
		"%B %d, %Y": "January 02, 2006",
	}

	hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// DefaultSettings returns the settings a new user starts with.
func DefaultSettings(userID int64) UserSettings {
	return UserSettings{
		UserID:             userID,
		CurrencySymbol:     "₹",
		CurrencyCode:       "INR",
		DecimalPlaces:      2,
		Theme:              "light",
		PrimaryColor:       "#007bff",
		SecondaryColor:     "#6c757d",
		DefaultDateRange:   RangeAllTime,
		ChartType:          ChartPie,
		EmailNotifications: true,
		MonthlyReports:     true,
		ItemsPerPage:       10,
		DateFormat:         "%Y-%m-%d",
	}
}

// Normalize fills a blank currency symbol from the currency code.
func (s *UserSettings) Normalize() {
	s.CurrencySymbol = strings.TrimSpace(s.CurrencySymbol)
	s.CurrencyCode = strings.ToUpper(strings.TrimSpace(s.CurrencyCode))
	if s.CurrencySymbol == "" {
		s.CurrencySymbol = CurrencySymbols[s.CurrencyCode]
	}
}

func (s UserSettings) Validate() error {
	if _, ok := CurrencySymbols[s.CurrencyCode]; !ok {
		return NewValidationError("currency_code", "unsupported currency "+s.CurrencyCode)
	}
	if s.CurrencySymbol == "" || len([]rune(s.CurrencySymbol)) > 10 {
		return NewValidationError("currency_symbol", "must be 1 to 10 characters")
	}
	if s.DecimalPlaces < 0 || s.DecimalPlaces > 4 {
		return NewValidationError("decimal_places", "must be between 0 and 4")
	}
	if !contains(Themes, s.Theme) {
		return NewValidationError("theme", "unsupported theme "+s.Theme)
	}
	if !hexColor.MatchString(s.PrimaryColor) {
		return NewValidationError("primary_color", "must look like #rrggbb")
	}
	if !hexColor.MatchString(s.SecondaryColor) {
		return NewValidationError("secondary_color", "must look like #rrggbb")
	}
	if !contains(DateRanges, s.DefaultDateRange) {
		return NewValidationError("default_date_range", "unsupported range "+s.DefaultDateRange)
	}
	if !contains(ChartTypes, s.ChartType) {
		return NewValidationError("chart_type", "unsupported chart type "+s.ChartType)
	}
	if !contains(PageSizes, s.ItemsPerPage) {
		return NewValidationError("items_per_page", "must be one of 5, 10, 25, 50, 100")
	}
	if _, ok := dateLayouts[s.DateFormat]; !ok {
		return NewValidationError("date_format", "unsupported date format")
	}
	return nil
}

// FormatDate renders d with the user's date format.
func (s UserSettings) FormatDate(d Date) string {
	if d.IsZero() {
		return ""
	}
	layout, ok := dateLayouts[s.DateFormat]
	if !ok {
		layout = DateLayout
	}
	return d.Format(layout)
}

// FormatMoney renders m with the currency symbol, grouping and decimal places.
func (s UserSettings) FormatMoney(m Money) string {
	p := message.NewPrinter(language.English)
	sign := ""
	v := m.Major()
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + s.CurrencySymbol + p.Sprint(number.Decimal(v, number.Scale(s.DecimalPlaces)))
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
