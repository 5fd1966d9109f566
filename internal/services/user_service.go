package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tally/internal/amqp"
	"tally/internal/core"
)

// UserService resolves the acting user and removes users with their data.
type UserService struct {
	store Store
	hooks Hooks
}

func NewUserService(store Store, hooks Hooks) *UserService {
	return &UserService{store: store, hooks: hooks}
}

// Resolve returns the user named username, creating it on first sight.
// A blank email becomes username@localhost.
func (s *UserService) Resolve(ctx context.Context, username, email string) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return core.User{}, core.NewValidationError("username", "username is required")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		email = username + "@localhost"
	}

	u, err := s.store.EnsureUser(ctx, username, email)
	if err != nil {
		return core.User{}, fmt.Errorf("resolve user %q: %w", username, err)
	}
	return u, nil
}

// Delete removes the user and everything they own in one transaction.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	err := s.store.WithTx(ctx, func(tx Store) error {
		return tx.DeleteUser(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("delete user %d: %w", userID, err)
	}

	slog.InfoContext(ctx, "User deleted", "component", "app", "user_id", userID)
	s.hooks.changed(ctx, amqp.EventExpensesCleared, userID)
	return nil
}
