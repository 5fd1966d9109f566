package storage

import (
	"context"
	"fmt"

	"tally/internal/core"
)

const settingsColumns = `id, user_id, currency_symbol, currency_code, decimal_places, theme,
	primary_color, secondary_color, default_date_range, chart_type,
	email_notifications, monthly_reports, items_per_page, date_format, created_at, updated_at`

func (q *Queries) GetSettings(ctx context.Context, userID int64) (core.UserSettings, error) {
	var s core.UserSettings
	var decimals, perPage int64
	var created, updated string
	err := q.queryRow(ctx, `SELECT `+settingsColumns+` FROM user_settings WHERE user_id = ?`, userID).
		Scan(&s.ID, &s.UserID, &s.CurrencySymbol, &s.CurrencyCode, &decimals, &s.Theme,
			&s.PrimaryColor, &s.SecondaryColor, &s.DefaultDateRange, &s.ChartType,
			&s.EmailNotifications, &s.MonthlyReports, &perPage, &s.DateFormat, &created, &updated)
	if err != nil {
		return core.UserSettings{}, notFound(err)
	}
	s.DecimalPlaces = int(decimals)
	s.ItemsPerPage = int(perPage)
	s.CreatedAt = parseTimestamp(created)
	s.UpdatedAt = parseTimestamp(updated)
	return s, nil
}

func (q *Queries) CreateSettings(ctx context.Context, s core.UserSettings) (core.UserSettings, error) {
	ts := now()
	err := q.queryRow(ctx, `
		INSERT INTO user_settings (user_id, currency_symbol, currency_code, decimal_places, theme,
			primary_color, secondary_color, default_date_range, chart_type,
			email_notifications, monthly_reports, items_per_page, date_format, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		s.UserID, s.CurrencySymbol, s.CurrencyCode, s.DecimalPlaces, s.Theme,
		s.PrimaryColor, s.SecondaryColor, s.DefaultDateRange, s.ChartType,
		s.EmailNotifications, s.MonthlyReports, s.ItemsPerPage, s.DateFormat, ts, ts).Scan(&s.ID)
	if err != nil {
		return core.UserSettings{}, fmt.Errorf("insert settings: %w", err)
	}
	s.CreatedAt = parseTimestamp(ts)
	s.UpdatedAt = s.CreatedAt
	return s, nil
}

func (q *Queries) UpdateSettings(ctx context.Context, s core.UserSettings) error {
	res, err := q.exec(ctx, `
		UPDATE user_settings
		SET currency_symbol = ?, currency_code = ?, decimal_places = ?, theme = ?,
			primary_color = ?, secondary_color = ?, default_date_range = ?, chart_type = ?,
			email_notifications = ?, monthly_reports = ?, items_per_page = ?, date_format = ?, updated_at = ?
		WHERE user_id = ?`,
		s.CurrencySymbol, s.CurrencyCode, s.DecimalPlaces, s.Theme,
		s.PrimaryColor, s.SecondaryColor, s.DefaultDateRange, s.ChartType,
		s.EmailNotifications, s.MonthlyReports, s.ItemsPerPage, s.DateFormat, now(), s.UserID)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return requireAffected(res)
}
