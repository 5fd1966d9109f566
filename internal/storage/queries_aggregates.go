package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tally/internal/core"
)

func userPeriod(userID int64, p core.Period) (string, []any) {
	where, args := periodClause("e.date", p, []string{"e.user_id = ?"}, []any{userID})
	return " WHERE " + strings.Join(where, " AND "), args
}

// SumAmount totals the user's expenses in p. No rows sums to zero.
func (q *Queries) SumAmount(ctx context.Context, userID int64, p core.Period) (core.Money, error) {
	cond, args := userPeriod(userID, p)
	var cents int64
	err := q.queryRow(ctx,
		`SELECT CAST(COALESCE(SUM(e.amount_cents), 0) AS BIGINT) FROM expenses e`+cond, args...).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum expenses: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

// SumByCategory returns per-category totals in p ordered by category name.
func (q *Queries) SumByCategory(ctx context.Context, userID int64, p core.Period) ([]core.CategoryAmount, error) {
	cond, args := userPeriod(userID, p)
	rows, err := q.query(ctx, `
		SELECT c.name, CAST(SUM(e.amount_cents) AS BIGINT)
		FROM expenses e
		JOIN categories c ON c.id = e.category_id`+cond+`
		GROUP BY c.id, c.name
		ORDER BY c.name`, args...)
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	defer rows.Close()

	out := []core.CategoryAmount{}
	for rows.Next() {
		var ca core.CategoryAmount
		if err := rows.Scan(&ca.Name, &ca.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		out = append(out, ca)
	}
	return out, rows.Err()
}

// SumByDate returns per-day totals in p in ascending date order.
func (q *Queries) SumByDate(ctx context.Context, userID int64, p core.Period) ([]core.DailyAmount, error) {
	cond, args := userPeriod(userID, p)
	rows, err := q.query(ctx, `
		SELECT e.date, CAST(SUM(e.amount_cents) AS BIGINT)
		FROM expenses e`+cond+`
		GROUP BY e.date
		ORDER BY e.date`, args...)
	if err != nil {
		return nil, fmt.Errorf("sum by date: %w", err)
	}
	defer rows.Close()

	out := []core.DailyAmount{}
	for rows.Next() {
		var date string
		var da core.DailyAmount
		if err := rows.Scan(&date, &da.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan daily sum: %w", err)
		}
		if da.Date, err = parseStoredDate(date); err != nil {
			return nil, err
		}
		out = append(out, da)
	}
	return out, rows.Err()
}

// SumByMonth returns per-month totals in p in chronological order.
// Months without expenses are omitted.
func (q *Queries) SumByMonth(ctx context.Context, userID int64, p core.Period) ([]core.MonthlyAmount, error) {
	cond, args := userPeriod(userID, p)
	rows, err := q.query(ctx, `
		SELECT substr(e.date, 1, 7) AS ym, CAST(SUM(e.amount_cents) AS BIGINT)
		FROM expenses e`+cond+`
		GROUP BY substr(e.date, 1, 7)
		ORDER BY ym`, args...)
	if err != nil {
		return nil, fmt.Errorf("sum by month: %w", err)
	}
	defer rows.Close()

	out := []core.MonthlyAmount{}
	for rows.Next() {
		var ym string
		var ma core.MonthlyAmount
		if err := rows.Scan(&ym, &ma.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan monthly sum: %w", err)
		}
		if ma.Year, ma.Month, err = splitYearMonth(ym); err != nil {
			return nil, err
		}
		out = append(out, ma)
	}
	return out, rows.Err()
}

// CategoryStats returns totals and counts per category in p, largest first.
func (q *Queries) CategoryStats(ctx context.Context, userID int64, p core.Period) ([]core.CategoryStats, error) {
	cond, args := userPeriod(userID, p)
	rows, err := q.query(ctx, `
		SELECT c.name, CAST(SUM(e.amount_cents) AS BIGINT) AS total, COUNT(e.id)
		FROM expenses e
		JOIN categories c ON c.id = e.category_id`+cond+`
		GROUP BY c.id, c.name
		ORDER BY total DESC, c.name`, args...)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	defer rows.Close()

	out := []core.CategoryStats{}
	for rows.Next() {
		var cs core.CategoryStats
		var count int64
		if err := rows.Scan(&cs.Name, &cs.Amount.Cents, &count); err != nil {
			return nil, fmt.Errorf("scan category stats: %w", err)
		}
		cs.Count = int(count)
		out = append(out, cs)
	}
	return out, rows.Err()
}

func splitYearMonth(ym string) (int, int, error) {
	parts := strings.SplitN(ym, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed month key %q", ym)
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed month key %q: %w", ym, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed month key %q: %w", ym, err)
	}
	return y, m, nil
}
