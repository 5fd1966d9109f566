package sheets

import (
	"context"

	"tally/internal/core"
)

// Ports for the spreadsheet mirror adapters.
type (
	ExpenseWriter interface {
		// Append adds one row per expense and returns the written range.
		Append(ctx context.Context, expenses []core.Expense) (rowRef string, err error)
	}

	ExpenseDeleter interface {
		// Delete removes the user's rows for expenseIDs, or every row of the
		// user when expenseIDs is empty.
		Delete(ctx context.Context, userID int64, expenseIDs []int64) (removed int, err error)
	}

	Mirror interface {
		ExpenseWriter
		ExpenseDeleter
	}
)

// Header is the first row of a mirror sheet.
var Header = []string{"Date", "Description", "Amount", "Category", "Subcategory", "Notes", "User", "Expense ID"}

// Column positions in Header.
const (
	ColUser      = 6
	ColExpenseID = 7
)
