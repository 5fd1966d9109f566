package storage

import (
	"context"

	"tally/internal/core"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=storage

// Store defines every persistence operation the services use.
// All reads and writes of user data are scoped by the owning user id.
type Store interface {
	// WithTx runs fn against a Store bound to one transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(Store) error) error
	Ping(ctx context.Context) error

	// User operations
	EnsureUser(ctx context.Context, username, email string) (core.User, error)
	GetUser(ctx context.Context, id int64) (core.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Category operations
	ListCategories(ctx context.Context, userID int64) ([]core.Category, error)
	GetCategory(ctx context.Context, userID, id int64) (core.Category, error)
	FindCategoryByName(ctx context.Context, userID int64, name string) (core.Category, error)
	CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
	UpdateCategory(ctx context.Context, c core.Category) error
	DeleteCategory(ctx context.Context, userID, id int64) error
	CountCategoryExpenses(ctx context.Context, userID, id int64) (int, error)

	// Subcategory operations
	ListSubcategories(ctx context.Context, userID, categoryID int64) ([]core.Subcategory, error)
	GetSubcategory(ctx context.Context, userID, id int64) (core.Subcategory, error)
	FindSubcategoryByName(ctx context.Context, categoryID int64, name string) (core.Subcategory, error)
	SubcategoryNameExists(ctx context.Context, categoryID int64, name string) (bool, error)
	CreateSubcategory(ctx context.Context, s core.Subcategory) (core.Subcategory, error)
	UpdateSubcategory(ctx context.Context, s core.Subcategory) error
	DeleteSubcategory(ctx context.Context, id int64) error
	CountSubcategoryExpenses(ctx context.Context, id int64) (int, error)

	// Expense operations
	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	UpdateExpense(ctx context.Context, e core.Expense) error
	GetExpense(ctx context.Context, userID, id int64) (core.Expense, error)
	DeleteExpense(ctx context.Context, userID, id int64) error
	DeleteAllExpenses(ctx context.Context, userID int64) (int64, error)
	ListExpenses(ctx context.Context, userID int64, f core.ExpenseFilter) (core.ExpensePage, error)
	AllExpenses(ctx context.Context, userID int64) ([]core.Expense, error)
	RecentExpenses(ctx context.Context, userID int64, limit int) ([]core.Expense, error)
	CountExpenses(ctx context.Context, userID int64) (int, error)
	ReassignCategory(ctx context.Context, userID, fromID, toID int64) (int64, error)
	ReassignSubcategory(ctx context.Context, userID, fromID, toID int64) (int64, error)

	// Aggregate operations
	SumAmount(ctx context.Context, userID int64, p core.Period) (core.Money, error)
	SumByCategory(ctx context.Context, userID int64, p core.Period) ([]core.CategoryAmount, error)
	SumByDate(ctx context.Context, userID int64, p core.Period) ([]core.DailyAmount, error)
	SumByMonth(ctx context.Context, userID int64, p core.Period) ([]core.MonthlyAmount, error)
	CategoryStats(ctx context.Context, userID int64, p core.Period) ([]core.CategoryStats, error)

	// Settings operations
	GetSettings(ctx context.Context, userID int64) (core.UserSettings, error)
	CreateSettings(ctx context.Context, s core.UserSettings) (core.UserSettings, error)
	UpdateSettings(ctx context.Context, s core.UserSettings) error
}
