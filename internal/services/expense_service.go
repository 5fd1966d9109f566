package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tally/internal/amqp"
	"tally/internal/core"
)

// ExpenseService validates and persists expenses, then notifies the hooks.
type ExpenseService struct {
	store Store
	hooks Hooks
}

func NewExpenseService(store Store, hooks Hooks) *ExpenseService {
	return &ExpenseService{store: store, hooks: hooks}
}

// Create saves a new expense for userID.
func (s *ExpenseService) Create(ctx context.Context, userID int64, e core.Expense) (core.Expense, error) {
	e.UserID = userID
	if err := s.validate(ctx, e); err != nil {
		return core.Expense{}, err
	}

	created, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense created",
		"component", "expense",
		"user_id", userID,
		"expense_id", created.ID,
		"amount_cents", created.Amount.Cents)
	s.hooks.changed(ctx, amqp.EventExpenseCreated, userID, created.ID)
	return created, nil
}

// Update replaces the editable fields of an existing expense.
func (s *ExpenseService) Update(ctx context.Context, userID int64, e core.Expense) (core.Expense, error) {
	if _, err := s.store.GetExpense(ctx, userID, e.ID); err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", e.ID, err)
	}
	e.UserID = userID
	if err := s.validate(ctx, e); err != nil {
		return core.Expense{}, err
	}

	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	updated, err := s.store.GetExpense(ctx, userID, e.ID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("reload expense %d: %w", e.ID, err)
	}

	s.hooks.changed(ctx, amqp.EventExpenseUpdated, userID, e.ID)
	return updated, nil
}

func (s *ExpenseService) Get(ctx context.Context, userID, id int64) (core.Expense, error) {
	e, err := s.store.GetExpense(ctx, userID, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.store.DeleteExpense(ctx, userID, id); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	slog.InfoContext(ctx, "Expense deleted", "component", "expense", "user_id", userID, "expense_id", id)
	s.hooks.changed(ctx, amqp.EventExpenseDeleted, userID, id)
	return nil
}

// DeleteAll removes every expense of the user and reports how many went.
func (s *ExpenseService) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	var removed int64
	err := s.store.WithTx(ctx, func(tx Store) error {
		n, err := tx.DeleteAllExpenses(ctx, userID)
		removed = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete all expenses: %w", err)
	}

	slog.InfoContext(ctx, "All expenses deleted", "component", "expense", "user_id", userID, "rows", removed)
	s.hooks.changed(ctx, amqp.EventExpensesCleared, userID)
	return removed, nil
}

// List returns one page of the user's expenses matching f.
func (s *ExpenseService) List(ctx context.Context, userID int64, f core.ExpenseFilter) (core.ExpensePage, error) {
	page, err := s.store.ListExpenses(ctx, userID, f)
	if err != nil {
		return core.ExpensePage{}, fmt.Errorf("list expenses: %w", err)
	}
	return page, nil
}

type sampleExpense struct {
	category    string
	description string
	cents       int64
	daysAgo     int
	notes       string
}

var sampleExpenses = []sampleExpense{
	{"Food & Dining", "Coffee Shop", 450, 0, "Morning coffee"},
	{"Transportation", "Gas Station", 4500, 1, "Full tank"},
	{"Entertainment", "Netflix Subscription", 1599, 5, "Monthly fee"},
}

// SampleData creates the three demo categories, reusing any the user
// already has, and one recent expense in each.
func (s *ExpenseService) SampleData(ctx context.Context, userID int64, now time.Time) ([]int64, error) {
	today := core.DateOf(now)
	var ids []int64

	err := s.store.WithTx(ctx, func(tx Store) error {
		for _, sample := range sampleExpenses {
			cat, _, err := findOrCreateCategory(ctx, tx, userID, sample.category)
			if err != nil {
				return err
			}
			created, err := tx.CreateExpense(ctx, core.Expense{
				UserID:      userID,
				Date:        today.AddDays(-sample.daysAgo),
				Description: sample.description,
				Amount:      core.Money{Cents: sample.cents},
				CategoryID:  cat.ID,
				Notes:       sample.notes,
			})
			if err != nil {
				return fmt.Errorf("create sample expense: %w", err)
			}
			ids = append(ids, created.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create sample data: %w", err)
	}

	s.hooks.changed(ctx, amqp.EventExpensesImported, userID, ids...)
	return ids, nil
}

// validate checks the fields and that category and subcategory belong to
// the expense's user and to each other.
func (s *ExpenseService) validate(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}

	if _, err := s.store.GetCategory(ctx, e.UserID, e.CategoryID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NewValidationError("category_id", "unknown category")
		}
		return fmt.Errorf("get category %d: %w", e.CategoryID, err)
	}

	if e.SubcategoryID == 0 {
		return nil
	}
	sub, err := s.store.GetSubcategory(ctx, e.UserID, e.SubcategoryID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NewValidationError("subcategory_id", "unknown subcategory")
		}
		return fmt.Errorf("get subcategory %d: %w", e.SubcategoryID, err)
	}
	if sub.CategoryID != e.CategoryID {
		return core.NewValidationError("subcategory_id", "subcategory does not belong to the selected category")
	}
	return nil
}

// findOrCreateCategory matches by exact name within the user's categories.
// The bool reports whether the category was created.
func findOrCreateCategory(ctx context.Context, st Store, userID int64, name string) (core.Category, bool, error) {
	cat, err := st.FindCategoryByName(ctx, userID, name)
	if err == nil {
		return cat, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return core.Category{}, false, fmt.Errorf("find category %q: %w", name, err)
	}
	cat, err = st.CreateCategory(ctx, core.Category{UserID: userID, Name: name})
	if err != nil {
		return core.Category{}, false, fmt.Errorf("create category %q: %w", name, err)
	}
	return cat, true, nil
}

func findOrCreateSubcategory(ctx context.Context, st Store, categoryID int64, name string) (core.Subcategory, bool, error) {
	sub, err := st.FindSubcategoryByName(ctx, categoryID, name)
	if err == nil {
		return sub, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return core.Subcategory{}, false, fmt.Errorf("find subcategory %q: %w", name, err)
	}
	sub, err = st.CreateSubcategory(ctx, core.Subcategory{CategoryID: categoryID, Name: name})
	if err != nil {
		return core.Subcategory{}, false, fmt.Errorf("create subcategory %q: %w", name, err)
	}
	return sub, true, nil
}
