package memory

import (
	"context"
	"fmt"
	"sync"

	"tally/internal/core"
	"tally/internal/sheets"
)

// Store is an in-process mirror used for dry runs and tests.
type Store struct {
	mu    sync.Mutex
	items []core.Expense
}

var _ sheets.Mirror = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Append stores the expenses and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, expenses []core.Expense) (string, error) {
	for _, e := range expenses {
		if err := e.Validate(); err != nil {
			return "", err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	first := len(s.items) + 1
	s.items = append(s.items, expenses...)
	return fmt.Sprintf("mem:%d-%d", first, len(s.items)), nil
}

func (s *Store) Delete(_ context.Context, userID int64, expenseIDs []int64) (int, error) {
	wanted := make(map[int64]bool, len(expenseIDs))
	for _, id := range expenseIDs {
		wanted[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	removed := 0
	for _, e := range s.items {
		if e.UserID == userID && (len(wanted) == 0 || wanted[e.ID]) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.items = kept
	return removed, nil
}

// Rows returns a copy of the mirrored expenses in append order.
func (s *Store) Rows() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...)
}
