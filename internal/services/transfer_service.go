package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/tabular"
)

// ImportResult counts what an import created.
type ImportResult struct {
	Expenses      int
	Categories    int
	Subcategories int
}

// TransferService imports and exports expenses as CSV or XLSX.
type TransferService struct {
	store Store
	hooks Hooks
}

func NewTransferService(store Store, hooks Hooks) *TransferService {
	return &TransferService{store: store, hooks: hooks}
}

// Import parses the whole file first, then creates every row in one
// transaction. Categories and subcategories are matched by name and
// created when missing.
func (s *TransferService) Import(ctx context.Context, userID int64, filename string, r io.Reader) (ImportResult, error) {
	format, err := tabular.FormatFromFilename(filename)
	if err != nil {
		return ImportResult{}, err
	}
	rows, err := tabular.Read(r, format)
	if err != nil {
		return ImportResult{}, err
	}

	var res ImportResult
	ids := make([]int64, 0, len(rows))
	err = s.store.WithTx(ctx, func(tx Store) error {
		categories := make(map[string]core.Category)
		type subKey struct {
			categoryID int64
			name       string
		}
		subcategories := make(map[subKey]int64)

		for _, row := range rows {
			cat, ok := categories[row.Category]
			if !ok {
				var created bool
				var err error
				cat, created, err = findOrCreateCategory(ctx, tx, userID, row.Category)
				if err != nil {
					return fmt.Errorf("row %d: %w", row.Line, err)
				}
				if created {
					res.Categories++
				}
				categories[row.Category] = cat
			}

			var subID int64
			if row.Subcategory != "" {
				key := subKey{cat.ID, row.Subcategory}
				if subID, ok = subcategories[key]; !ok {
					sub, created, err := findOrCreateSubcategory(ctx, tx, cat.ID, row.Subcategory)
					if err != nil {
						return fmt.Errorf("row %d: %w", row.Line, err)
					}
					if created {
						res.Subcategories++
					}
					subID = sub.ID
					subcategories[key] = subID
				}
			}

			created, err := tx.CreateExpense(ctx, core.Expense{
				UserID:        userID,
				Date:          row.Date,
				Description:   row.Description,
				Amount:        row.Amount,
				CategoryID:    cat.ID,
				SubcategoryID: subID,
				Notes:         row.Notes,
			})
			if err != nil {
				return fmt.Errorf("row %d: create expense: %w", row.Line, err)
			}
			ids = append(ids, created.ID)
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, fmt.Errorf("import expenses: %w", err)
	}
	res.Expenses = len(ids)

	slog.InfoContext(ctx, "Expenses imported",
		"component", "transfer",
		"user_id", userID,
		"format", format,
		"rows", res.Expenses,
		"categories_created", res.Categories)
	if res.Expenses > 0 {
		s.hooks.changed(ctx, amqp.EventExpensesImported, userID, ids...)
	}
	return res, nil
}

// Export writes every expense of the user in id order.
func (s *TransferService) Export(ctx context.Context, userID int64, w io.Writer, format tabular.Format) error {
	expenses, err := s.store.AllExpenses(ctx, userID)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}

	rows := make([]tabular.Row, len(expenses))
	for i, e := range expenses {
		rows[i] = tabular.FromExpense(e)
	}
	if err := tabular.Write(w, format, rows); err != nil {
		return fmt.Errorf("export expenses: %w", err)
	}

	slog.InfoContext(ctx, "Expenses exported", "component", "transfer", "user_id", userID, "format", format, "rows", len(rows))
	return nil
}

// ExportFilename names a download, e.g. expenses_20260317.csv.
func ExportFilename(format tabular.Format, now time.Time) string {
	return "expenses_" + now.Format("20060102") + format.Extension()
}
