package core

import (
	"errors"
	"testing"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	s := DefaultSettings(7)
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if s.UserID != 7 || s.CurrencyCode != "INR" || s.ItemsPerPage != 10 || !s.MonthlyReports {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*UserSettings)
		field  string
	}{
		{"currency", func(s *UserSettings) { s.CurrencyCode = "XYZ" }, "currency_code"},
		{"decimals high", func(s *UserSettings) { s.DecimalPlaces = 5 }, "decimal_places"},
		{"decimals low", func(s *UserSettings) { s.DecimalPlaces = -1 }, "decimal_places"},
		{"theme", func(s *UserSettings) { s.Theme = "neon" }, "theme"},
		{"color", func(s *UserSettings) { s.PrimaryColor = "blue" }, "primary_color"},
		{"secondary color", func(s *UserSettings) { s.SecondaryColor = "#12345" }, "secondary_color"},
		{"range", func(s *UserSettings) { s.DefaultDateRange = "forever" }, "default_date_range"},
		{"chart", func(s *UserSettings) { s.ChartType = "radar" }, "chart_type"},
		{"page size", func(s *UserSettings) { s.ItemsPerPage = 7 }, "items_per_page"},
		{"date format", func(s *UserSettings) { s.DateFormat = "%s" }, "date_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings(1)
			tt.mutate(&s)
			err := s.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestSettingsNormalizeFillsSymbol(t *testing.T) {
	s := DefaultSettings(1)
	s.CurrencyCode = " eur "
	s.CurrencySymbol = ""
	s.Normalize()
	if s.CurrencyCode != "EUR" || s.CurrencySymbol != "€" {
		t.Fatalf("got %q %q", s.CurrencyCode, s.CurrencySymbol)
	}

	s.CurrencySymbol = "EUR "
	s.Normalize()
	if s.CurrencySymbol != "EUR" {
		t.Fatalf("explicit symbol must be kept, got %q", s.CurrencySymbol)
	}
}

func TestFormatMoney(t *testing.T) {
	s := DefaultSettings(1)
	s.CurrencySymbol = "$"
	if got := s.FormatMoney(Money{Cents: 123456}); got != "$1,234.56" {
		t.Errorf("got %q", got)
	}
	s.DecimalPlaces = 0
	if got := s.FormatMoney(Money{Cents: 100000}); got != "$1,000" {
		t.Errorf("got %q", got)
	}
	s.DecimalPlaces = 2
	if got := s.FormatMoney(Money{Cents: -250}); got != "-$2.50" {
		t.Errorf("got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := NewDate(2026, 3, 5)
	cases := map[string]string{
		"%Y-%m-%d":  "2026-03-05",
		"%d/%m/%Y":  "05/03/2026",
		"%m/%d/%Y":  "03/05/2026",
		"%d-%b-%Y":  "05-Mar-2026",
		"%B %d, %Y": "March 05, 2026",
	}
	for format, want := range cases {
		s := DefaultSettings(1)
		s.DateFormat = format
		if got := s.FormatDate(d); got != want {
			t.Errorf("%s: got %q, want %q", format, got, want)
		}
	}
}
