package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType names a change to a user's expenses.
type EventType string

const (
	EventExpenseCreated    EventType = "expense.created"
	EventExpenseUpdated    EventType = "expense.updated"
	EventExpenseDeleted    EventType = "expense.deleted"
	EventExpensesImported  EventType = "expenses.imported"
	EventExpensesCleared   EventType = "expenses.cleared"
	EventCategoryMerged    EventType = "category.merged"
	EventSubcategoryMerged EventType = "subcategory.merged"
)

var knownEvents = map[EventType]bool{
	EventExpenseCreated:    true,
	EventExpenseUpdated:    true,
	EventExpenseDeleted:    true,
	EventExpensesImported:  true,
	EventExpensesCleared:   true,
	EventCategoryMerged:    true,
	EventSubcategoryMerged: true,
}

// ExpenseEvent is a lightweight notification. Consumers load the expenses
// they care about from the database by id.
type ExpenseEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	UserID     int64     `json:"user_id"`
	ExpenseIDs []int64   `json:"expense_ids"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewExpenseEvent stamps a new event with a random id and the current time.
func NewExpenseEvent(typ EventType, userID int64, expenseIDs ...int64) *ExpenseEvent {
	if expenseIDs == nil {
		expenseIDs = []int64{}
	}
	return &ExpenseEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		UserID:     userID,
		ExpenseIDs: expenseIDs,
		Timestamp:  time.Now().UTC(),
	}
}

// AddsExpenses reports whether the event introduces new expense rows.
func (e *ExpenseEvent) AddsExpenses() bool {
	return e.Type == EventExpenseCreated || e.Type == EventExpensesImported
}

// ToJSON converts the message to JSON bytes
func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseEventFromJSON decodes and checks a message body.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var e ExpenseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if !knownEvents[e.Type] {
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
	if e.UserID <= 0 {
		return nil, fmt.Errorf("event %s has no user", e.ID)
	}
	return &e, nil
}
