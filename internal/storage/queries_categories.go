package storage

import (
	"context"
	"fmt"

	"tally/internal/core"
)

// ListCategories returns the user's categories ordered by name, each with
// its subcategories and the number of expenses that reference it.
func (q *Queries) ListCategories(ctx context.Context, userID int64) ([]core.Category, error) {
	rows, err := q.query(ctx, `
		SELECT c.id, c.user_id, c.name, c.description, c.created_at,
		       (SELECT COUNT(*) FROM expenses e WHERE e.category_id = c.id) AS expense_count
		FROM categories c
		WHERE c.user_id = ?
		ORDER BY c.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	index := make(map[int64]int)
	for rows.Next() {
		var c core.Category
		var created string
		var count int64
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &created, &count); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.CreatedAt = parseTimestamp(created)
		c.ExpenseCount = int(count)
		index[c.ID] = len(cats)
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	if len(cats) == 0 {
		return cats, nil
	}

	subRows, err := q.query(ctx, `
		SELECT s.id, s.category_id, s.name, s.created_at
		FROM subcategories s
		JOIN categories c ON c.id = s.category_id
		WHERE c.user_id = ?
		ORDER BY s.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("query subcategories: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		s, err := scanSubcategory(subRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[s.CategoryID]; ok {
			cats[i].Subcategories = append(cats[i].Subcategories, s)
		}
	}
	if err := subRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subcategories: %w", err)
	}
	return cats, nil
}

func (q *Queries) GetCategory(ctx context.Context, userID, id int64) (core.Category, error) {
	c, err := scanCategory(q.queryRow(ctx, `
		SELECT id, user_id, name, description, created_at
		FROM categories WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		return core.Category{}, err
	}
	subs, err := q.ListSubcategories(ctx, userID, id)
	if err != nil {
		return core.Category{}, err
	}
	c.Subcategories = subs
	return c, nil
}

// FindCategoryByName matches the exact name within the user's categories.
func (q *Queries) FindCategoryByName(ctx context.Context, userID int64, name string) (core.Category, error) {
	return scanCategory(q.queryRow(ctx, `
		SELECT id, user_id, name, description, created_at
		FROM categories WHERE user_id = ? AND name = ?`, userID, name))
}

func (q *Queries) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	created := now()
	err := q.queryRow(ctx, `
		INSERT INTO categories (user_id, name, description, created_at)
		VALUES (?, ?, ?, ?) RETURNING id`,
		c.UserID, c.Name, c.Description, created).Scan(&c.ID)
	if err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}
	c.CreatedAt = parseTimestamp(created)
	return c, nil
}

func (q *Queries) UpdateCategory(ctx context.Context, c core.Category) error {
	res, err := q.exec(ctx, `
		UPDATE categories SET name = ?, description = ?
		WHERE id = ? AND user_id = ?`,
		c.Name, c.Description, c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireAffected(res)
}

// DeleteCategory removes the category and its subcategories. Callers must
// make sure no expense references either.
func (q *Queries) DeleteCategory(ctx context.Context, userID, id int64) error {
	if _, err := q.exec(ctx, `
		DELETE FROM subcategories
		WHERE category_id IN (SELECT id FROM categories WHERE id = ? AND user_id = ?)`,
		id, userID); err != nil {
		return fmt.Errorf("delete subcategories: %w", err)
	}
	res, err := q.exec(ctx, `DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(res)
}

func (q *Queries) CountCategoryExpenses(ctx context.Context, userID, id int64) (int, error) {
	n, err := q.count(ctx,
		`SELECT COUNT(*) FROM expenses WHERE category_id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("count category expenses: %w", err)
	}
	return n, nil
}

// ListSubcategories returns the category's subcategories ordered by name.
// An unknown or foreign category yields an empty list.
func (q *Queries) ListSubcategories(ctx context.Context, userID, categoryID int64) ([]core.Subcategory, error) {
	rows, err := q.query(ctx, `
		SELECT s.id, s.category_id, s.name, s.created_at
		FROM subcategories s
		JOIN categories c ON c.id = s.category_id
		WHERE s.category_id = ? AND c.user_id = ?
		ORDER BY s.name`, categoryID, userID)
	if err != nil {
		return nil, fmt.Errorf("query subcategories: %w", err)
	}
	defer rows.Close()

	subs := []core.Subcategory{}
	for rows.Next() {
		s, err := scanSubcategory(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subcategories: %w", err)
	}
	return subs, nil
}

// GetSubcategory resolves a subcategory through its parent's owner.
func (q *Queries) GetSubcategory(ctx context.Context, userID, id int64) (core.Subcategory, error) {
	var s core.Subcategory
	var created string
	err := q.queryRow(ctx, `
		SELECT s.id, s.category_id, s.name, s.created_at
		FROM subcategories s
		JOIN categories c ON c.id = s.category_id
		WHERE s.id = ? AND c.user_id = ?`, id, userID).
		Scan(&s.ID, &s.CategoryID, &s.Name, &created)
	if err != nil {
		return core.Subcategory{}, notFound(err)
	}
	s.CreatedAt = parseTimestamp(created)
	return s, nil
}

func (q *Queries) FindSubcategoryByName(ctx context.Context, categoryID int64, name string) (core.Subcategory, error) {
	var s core.Subcategory
	var created string
	err := q.queryRow(ctx, `
		SELECT id, category_id, name, created_at
		FROM subcategories WHERE category_id = ? AND name = ?`, categoryID, name).
		Scan(&s.ID, &s.CategoryID, &s.Name, &created)
	if err != nil {
		return core.Subcategory{}, notFound(err)
	}
	s.CreatedAt = parseTimestamp(created)
	return s, nil
}

func (q *Queries) SubcategoryNameExists(ctx context.Context, categoryID int64, name string) (bool, error) {
	n, err := q.count(ctx,
		`SELECT COUNT(*) FROM subcategories WHERE category_id = ? AND name = ?`, categoryID, name)
	if err != nil {
		return false, fmt.Errorf("check subcategory name: %w", err)
	}
	return n > 0, nil
}

func (q *Queries) CreateSubcategory(ctx context.Context, s core.Subcategory) (core.Subcategory, error) {
	created := now()
	err := q.queryRow(ctx, `
		INSERT INTO subcategories (category_id, name, created_at)
		VALUES (?, ?, ?) RETURNING id`,
		s.CategoryID, s.Name, created).Scan(&s.ID)
	if err != nil {
		return core.Subcategory{}, fmt.Errorf("insert subcategory: %w", err)
	}
	s.CreatedAt = parseTimestamp(created)
	return s, nil
}

// UpdateSubcategory writes name and parent; ownership is checked by callers.
func (q *Queries) UpdateSubcategory(ctx context.Context, s core.Subcategory) error {
	res, err := q.exec(ctx,
		`UPDATE subcategories SET name = ?, category_id = ? WHERE id = ?`,
		s.Name, s.CategoryID, s.ID)
	if err != nil {
		return fmt.Errorf("update subcategory: %w", err)
	}
	return requireAffected(res)
}

func (q *Queries) DeleteSubcategory(ctx context.Context, id int64) error {
	res, err := q.exec(ctx, `DELETE FROM subcategories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return requireAffected(res)
}

func (q *Queries) CountSubcategoryExpenses(ctx context.Context, id int64) (int, error) {
	n, err := q.count(ctx, `SELECT COUNT(*) FROM expenses WHERE subcategory_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("count subcategory expenses: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (core.Category, error) {
	var c core.Category
	var created string
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &created); err != nil {
		return core.Category{}, notFound(err)
	}
	c.CreatedAt = parseTimestamp(created)
	return c, nil
}

func scanSubcategory(row rowScanner) (core.Subcategory, error) {
	var s core.Subcategory
	var created string
	if err := row.Scan(&s.ID, &s.CategoryID, &s.Name, &created); err != nil {
		return core.Subcategory{}, fmt.Errorf("scan subcategory: %w", err)
	}
	s.CreatedAt = parseTimestamp(created)
	return s, nil
}
