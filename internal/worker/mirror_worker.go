package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/sheets"
)

// ExpenseReader loads expenses for the mirror.
type ExpenseReader interface {
	GetExpense(ctx context.Context, userID, id int64) (core.Expense, error)
}

// MirrorWorker applies expense events to the spreadsheet mirror.
type MirrorWorker struct {
	store     ExpenseReader
	mirror    sheets.Mirror
	batchSize int
}

func NewMirrorWorker(store ExpenseReader, mirror sheets.Mirror, batchSize int) *MirrorWorker {
	if batchSize < 1 {
		batchSize = 50
	}
	return &MirrorWorker{
		store:     store,
		mirror:    mirror,
		batchSize: batchSize,
	}
}

// HandleEvent mirrors one event. Merges are skipped: mirrored rows keep
// the category names they were written with.
func (w *MirrorWorker) HandleEvent(ctx context.Context, ev *amqp.ExpenseEvent) error {
	slog.InfoContext(ctx, "Processing expense event",
		"component", "worker",
		"event_id", ev.ID,
		"event_type", ev.Type,
		"user_id", ev.UserID,
		"expenses", len(ev.ExpenseIDs))

	switch ev.Type {
	case amqp.EventExpenseCreated, amqp.EventExpensesImported:
		return w.appendExpenses(ctx, ev.UserID, ev.ExpenseIDs)

	case amqp.EventExpenseUpdated:
		if err := w.deleteRows(ctx, ev.UserID, ev.ExpenseIDs); err != nil {
			return err
		}
		return w.appendExpenses(ctx, ev.UserID, ev.ExpenseIDs)

	case amqp.EventExpenseDeleted:
		return w.deleteRows(ctx, ev.UserID, ev.ExpenseIDs)

	case amqp.EventExpensesCleared:
		removed, err := w.mirror.Delete(ctx, ev.UserID, nil)
		if err != nil {
			return fmt.Errorf("clear mirror rows: %w", err)
		}
		slog.InfoContext(ctx, "Cleared mirrored expenses", "component", "worker", "user_id", ev.UserID, "rows", removed)
		return nil

	default:
		slog.DebugContext(ctx, "Event does not change mirrored rows", "event_type", ev.Type)
		return nil
	}
}

// deleteRows removes specific rows. An empty id list is a no-op here so a
// malformed event cannot wipe the user's rows.
func (w *MirrorWorker) deleteRows(ctx context.Context, userID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	removed, err := w.mirror.Delete(ctx, userID, ids)
	if err != nil {
		return fmt.Errorf("delete mirror rows: %w", err)
	}
	slog.DebugContext(ctx, "Deleted mirrored rows", "component", "worker", "user_id", userID, "rows", removed)
	return nil
}

// appendExpenses loads the expenses and appends them in batches. Expenses
// deleted since the event was published are skipped.
func (w *MirrorWorker) appendExpenses(ctx context.Context, userID int64, ids []int64) error {
	batch := make([]core.Expense, 0, w.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		ref, err := w.mirror.Append(ctx, batch)
		if err != nil {
			return fmt.Errorf("append to mirror: %w", err)
		}
		slog.InfoContext(ctx, "Mirrored expenses",
			"component", "worker",
			"user_id", userID,
			"rows", len(batch),
			"sheets_ref", ref)
		batch = batch[:0]
		return nil
	}

	for _, id := range ids {
		e, err := w.store.GetExpense(ctx, userID, id)
		if errors.Is(err, core.ErrNotFound) {
			slog.WarnContext(ctx, "Expense gone before mirroring, skipping", "user_id", userID, "expense_id", id)
			continue
		}
		if err != nil {
			return fmt.Errorf("get expense %d: %w", id, err)
		}
		batch = append(batch, e)
		if len(batch) == w.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}
