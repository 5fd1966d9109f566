package memory

import (
	"context"
	"testing"

	"tally/internal/core"
)

func expense(id, userID int64) core.Expense {
	return core.Expense{
		ID:          id,
		UserID:      userID,
		Date:        core.NewDate(2026, 1, 1),
		Description: "t",
		Amount:      core.Money{Cents: 123},
		CategoryID:  1,
	}
}

func TestMemoryStoreAppendAndDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	ref, err := s.Append(ctx, []core.Expense{expense(1, 1), expense(2, 1), expense(3, 2)})
	if err != nil || ref != "mem:1-3" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	n, err := s.Delete(ctx, 1, []int64{2})
	if err != nil || n != 1 {
		t.Fatalf("unexpected delete: n=%d err=%v", n, err)
	}
	if rows := s.Rows(); len(rows) != 2 || rows[0].ID != 1 || rows[1].ID != 3 {
		t.Fatalf("unexpected rows %v", rows)
	}

	// Empty id list clears only that user
	n, _ = s.Delete(ctx, 1, nil)
	if n != 1 || len(s.Rows()) != 1 {
		t.Fatalf("expected user 1 cleared, removed=%d rows=%v", n, s.Rows())
	}
}

func TestMemoryStoreRejectsInvalid(t *testing.T) {
	s := New()
	bad := expense(1, 1)
	bad.Amount = core.Money{}
	if _, err := s.Append(context.Background(), []core.Expense{expense(2, 1), bad}); err == nil {
		t.Fatal("expected validation error")
	}
	if len(s.Rows()) != 0 {
		t.Error("nothing should be stored when one row is invalid")
	}
}
