package storage

import (
	"context"
	"errors"
	"fmt"

	"tally/internal/core"
)

// EnsureUser returns the user with username, creating it on first sight.
func (q *Queries) EnsureUser(ctx context.Context, username, email string) (core.User, error) {
	u, err := q.userByName(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return core.User{}, fmt.Errorf("lookup user: %w", err)
	}

	created := now()
	var id int64
	err = q.queryRow(ctx,
		`INSERT INTO users (username, email, created_at) VALUES (?, ?, ?) RETURNING id`,
		username, email, created).Scan(&id)
	if err != nil {
		// Lost a race with a concurrent first request for the same user.
		if u, lookupErr := q.userByName(ctx, username); lookupErr == nil {
			return u, nil
		}
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}
	return core.User{ID: id, Username: username, Email: email, CreatedAt: parseTimestamp(created)}, nil
}

func (q *Queries) userByName(ctx context.Context, username string) (core.User, error) {
	var u core.User
	var created string
	err := q.queryRow(ctx,
		`SELECT id, username, email, created_at FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.Email, &created)
	if err != nil {
		return core.User{}, notFound(err)
	}
	u.CreatedAt = parseTimestamp(created)
	return u, nil
}

func (q *Queries) GetUser(ctx context.Context, id int64) (core.User, error) {
	var u core.User
	var created string
	err := q.queryRow(ctx,
		`SELECT id, username, email, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.Email, &created)
	if err != nil {
		return core.User{}, notFound(err)
	}
	u.CreatedAt = parseTimestamp(created)
	return u, nil
}

// DeleteUser removes the user and everything it owns, children first.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	steps := []struct {
		name  string
		query string
	}{
		{"expenses", `DELETE FROM expenses WHERE user_id = ?`},
		{"subcategories", `DELETE FROM subcategories WHERE category_id IN (SELECT id FROM categories WHERE user_id = ?)`},
		{"categories", `DELETE FROM categories WHERE user_id = ?`},
		{"settings", `DELETE FROM user_settings WHERE user_id = ?`},
	}
	for _, s := range steps {
		if _, err := q.exec(ctx, s.query, id); err != nil {
			return fmt.Errorf("delete %s: %w", s.name, err)
		}
	}
	res, err := q.exec(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireAffected(res)
}
