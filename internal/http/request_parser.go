// This file holds the helpers that turn query strings and form posts into
// domain values.

package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"tally/internal/core"
)

// sanitizeInput drops control characters other than tab and newlines and
// trims whitespace.
func sanitizeInput(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s))
}

// pathID reads a positive integer path wildcard.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// formID reads a positive integer field, 0 when absent or malformed.
func formID(v url.Values, key string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(v.Get(key)), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// formMoney reads an optional positive decimal amount. Malformed values are
// treated as absent.
func formMoney(v url.Values, key string) core.Money {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return core.Money{}
	}
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return core.Money{}
	}
	return core.Money{Cents: cents}
}

func formDate(v url.Values, key string) core.Date {
	d, err := core.ParseDate(v.Get(key))
	if err != nil {
		return core.Date{}
	}
	return d
}

// ParseExpenseFilter reads the listing filters. Values that do not parse are
// ignored rather than rejected.
func ParseExpenseFilter(q url.Values, perPage int) core.ExpenseFilter {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return core.ExpenseFilter{
		CategoryID:    formID(q, "category_id"),
		SubcategoryID: formID(q, "subcategory_id"),
		AmountMin:     formMoney(q, "amount_min"),
		AmountMax:     formMoney(q, "amount_max"),
		Period:        core.CustomPeriod(formDate(q, "date_from"), formDate(q, "date_to")),
		Search:        sanitizeInput(q.Get("q")),
		Page:          page,
		PerPage:       perPage,
	}
}

// ParseExpenseForm reads the expense form. Amount and date are checked here
// because they cannot be represented once parsing fails; the remaining
// rules are enforced by the service.
func ParseExpenseForm(form url.Values) (core.Expense, error) {
	e := core.Expense{
		Description:   sanitizeInput(form.Get("description")),
		CategoryID:    formID(form, "category_id"),
		SubcategoryID: formID(form, "subcategory_id"),
		Notes:         sanitizeInput(form.Get("notes")),
	}

	d, err := core.ParseDate(form.Get("date"))
	if err != nil {
		return e, core.NewValidationError("date", "enter a date as YYYY-MM-DD")
	}
	e.Date = d

	cents, err := core.ParseDecimalToCents(form.Get("amount"))
	if err != nil {
		return e, core.NewValidationError("amount", "enter a positive amount")
	}
	e.Amount = core.Money{Cents: cents}
	return e, nil
}

// ParseSettingsForm overlays the posted fields on base. Checkboxes that are
// absent from the form are off.
func ParseSettingsForm(form url.Values, base core.UserSettings) core.UserSettings {
	s := base
	s.CurrencyCode = sanitizeInput(form.Get("currency_code"))
	s.CurrencySymbol = sanitizeInput(form.Get("currency_symbol"))
	s.Theme = sanitizeInput(form.Get("theme"))
	s.PrimaryColor = sanitizeInput(form.Get("primary_color"))
	s.SecondaryColor = sanitizeInput(form.Get("secondary_color"))
	s.DefaultDateRange = sanitizeInput(form.Get("default_date_range"))
	s.ChartType = sanitizeInput(form.Get("chart_type"))
	s.DateFormat = form.Get("date_format")
	s.EmailNotifications = form.Get("email_notifications") != ""
	s.MonthlyReports = form.Get("monthly_reports") != ""

	// Out-of-range numbers fail validation instead of silently keeping base.
	s.DecimalPlaces = -1
	if n, err := strconv.Atoi(strings.TrimSpace(form.Get("decimal_places"))); err == nil {
		s.DecimalPlaces = n
	}
	s.ItemsPerPage = 0
	if n, err := strconv.Atoi(strings.TrimSpace(form.Get("items_per_page"))); err == nil {
		s.ItemsPerPage = n
	}
	return s
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Malformed request")
	}
	return nil
}
