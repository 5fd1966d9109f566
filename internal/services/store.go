package services

import (
	"context"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/storage"
)

// Store is the persistence contract every service depends on.
type Store = storage.Store

// EventPublisher announces changes to a user's expenses.
type EventPublisher interface {
	Publish(ctx context.Context, event *amqp.ExpenseEvent) error
}

// Invalidator drops cached read models for a user.
type Invalidator interface {
	Invalidate(userID int64)
}

// Hooks are notified after every committed write. Both fields are optional.
type Hooks struct {
	Publisher EventPublisher
	Cache     Invalidator
}

// changed invalidates the user's cached aggregates and publishes an event.
// Publishing is best effort: failures are logged, never returned.
func (h Hooks) changed(ctx context.Context, typ amqp.EventType, userID int64, expenseIDs ...int64) {
	if h.Cache != nil {
		h.Cache.Invalidate(userID)
	}
	if h.Publisher == nil {
		return
	}

	event := amqp.NewExpenseEvent(typ, userID, expenseIDs...)
	if err := h.Publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish expense event",
			"component", "amqp",
			"event_type", typ,
			"user_id", userID,
			"error", err)
	}
}
