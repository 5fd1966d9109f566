package storage

import (
	"context"
	"fmt"
	"strings"

	"tally/internal/core"
)

const expenseColumns = `
	e.id, e.user_id, e.date, e.description, e.amount_cents, e.category_id,
	COALESCE(e.subcategory_id, 0), e.notes, e.created_at, e.updated_at,
	c.name, COALESCE(s.name, '')`

const expenseJoins = `
	FROM expenses e
	JOIN categories c ON c.id = e.category_id
	LEFT JOIN subcategories s ON s.id = e.subcategory_id`

func scanExpense(row rowScanner) (core.Expense, error) {
	var e core.Expense
	var date, created, updated string
	err := row.Scan(&e.ID, &e.UserID, &date, &e.Description, &e.Amount.Cents, &e.CategoryID,
		&e.SubcategoryID, &e.Notes, &created, &updated, &e.CategoryName, &e.SubcategoryName)
	if err != nil {
		return core.Expense{}, notFound(err)
	}
	if e.Date, err = parseStoredDate(date); err != nil {
		return core.Expense{}, err
	}
	e.CreatedAt = parseTimestamp(created)
	e.UpdatedAt = parseTimestamp(updated)
	return e, nil
}

func (q *Queries) listExpenses(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

func (q *Queries) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	ts := now()
	err := q.queryRow(ctx, `
		INSERT INTO expenses (user_id, description, amount_cents, date, category_id, subcategory_id, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		e.UserID, e.Description, e.Amount.Cents, e.Date.String(), e.CategoryID,
		nullID(e.SubcategoryID), e.Notes, ts, ts).Scan(&e.ID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	e.CreatedAt = parseTimestamp(ts)
	e.UpdatedAt = e.CreatedAt
	return e, nil
}

func (q *Queries) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := q.exec(ctx, `
		UPDATE expenses
		SET description = ?, amount_cents = ?, date = ?, category_id = ?, subcategory_id = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		e.Description, e.Amount.Cents, e.Date.String(), e.CategoryID, nullID(e.SubcategoryID),
		e.Notes, now(), e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireAffected(res)
}

func (q *Queries) GetExpense(ctx context.Context, userID, id int64) (core.Expense, error) {
	return scanExpense(q.queryRow(ctx,
		`SELECT `+expenseColumns+expenseJoins+` WHERE e.id = ? AND e.user_id = ?`, id, userID))
}

func (q *Queries) DeleteExpense(ctx context.Context, userID, id int64) error {
	res, err := q.exec(ctx, `DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireAffected(res)
}

// DeleteAllExpenses removes every expense of the user and reports how many.
func (q *Queries) DeleteAllExpenses(ctx context.Context, userID int64) (int64, error) {
	res, err := q.exec(ctx, `DELETE FROM expenses WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete expenses: %w", err)
	}
	return res.RowsAffected()
}

// ListExpenses returns one page of the user's expenses matching f, newest first.
func (q *Queries) ListExpenses(ctx context.Context, userID int64, f core.ExpenseFilter) (core.ExpensePage, error) {
	where := []string{"e.user_id = ?"}
	args := []any{userID}
	if f.CategoryID > 0 {
		where = append(where, "e.category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.SubcategoryID > 0 {
		where = append(where, "e.subcategory_id = ?")
		args = append(args, f.SubcategoryID)
	}
	if f.AmountMin.Cents > 0 {
		where = append(where, "e.amount_cents >= ?")
		args = append(args, f.AmountMin.Cents)
	}
	if f.AmountMax.Cents > 0 {
		where = append(where, "e.amount_cents <= ?")
		args = append(args, f.AmountMax.Cents)
	}
	where, args = periodClause("e.date", f.Period, where, args)
	if search := strings.TrimSpace(f.Search); search != "" {
		where = append(where, `LOWER(e.description) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(search))+"%")
	}
	cond := " WHERE " + strings.Join(where, " AND ")

	page := core.ExpensePage{Page: f.Page, PerPage: f.PerPage}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PerPage < 1 {
		page.PerPage = 10
	}

	total, err := q.count(ctx, `SELECT COUNT(*) FROM expenses e`+cond, args...)
	if err != nil {
		return core.ExpensePage{}, fmt.Errorf("count expenses: %w", err)
	}
	page.Total = total

	offset := (page.Page - 1) * page.PerPage
	items, err := q.listExpenses(ctx,
		`SELECT `+expenseColumns+expenseJoins+cond+` ORDER BY e.date DESC, e.id DESC LIMIT ? OFFSET ?`,
		append(args, page.PerPage, offset)...)
	if err != nil {
		return core.ExpensePage{}, err
	}
	page.Items = items
	return page, nil
}

// AllExpenses returns every expense of the user in insertion order.
func (q *Queries) AllExpenses(ctx context.Context, userID int64) ([]core.Expense, error) {
	return q.listExpenses(ctx,
		`SELECT `+expenseColumns+expenseJoins+` WHERE e.user_id = ? ORDER BY e.id`, userID)
}

// RecentExpenses returns the latest expenses by date.
func (q *Queries) RecentExpenses(ctx context.Context, userID int64, limit int) ([]core.Expense, error) {
	return q.listExpenses(ctx,
		`SELECT `+expenseColumns+expenseJoins+` WHERE e.user_id = ? ORDER BY e.date DESC, e.id DESC LIMIT ?`,
		userID, limit)
}

func (q *Queries) CountExpenses(ctx context.Context, userID int64) (int, error) {
	n, err := q.count(ctx, `SELECT COUNT(*) FROM expenses WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}

// ReassignCategory moves the user's expenses from one category to another.
func (q *Queries) ReassignCategory(ctx context.Context, userID, fromID, toID int64) (int64, error) {
	res, err := q.exec(ctx,
		`UPDATE expenses SET category_id = ?, updated_at = ? WHERE category_id = ? AND user_id = ?`,
		toID, now(), fromID, userID)
	if err != nil {
		return 0, fmt.Errorf("reassign category: %w", err)
	}
	return res.RowsAffected()
}

// ReassignSubcategory moves the user's expenses from one subcategory to another.
func (q *Queries) ReassignSubcategory(ctx context.Context, userID, fromID, toID int64) (int64, error) {
	res, err := q.exec(ctx,
		`UPDATE expenses SET subcategory_id = ?, updated_at = ? WHERE subcategory_id = ? AND user_id = ?`,
		toID, now(), fromID, userID)
	if err != nil {
		return 0, fmt.Errorf("reassign subcategory: %w", err)
	}
	return res.RowsAffected()
}
