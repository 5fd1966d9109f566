package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/amqp"
	"tally/internal/core"
)

func TestUserService_Resolve(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	svc := NewUserService(repo, Hooks{})

	u, err := svc.Resolve(ctx, " alice ", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@localhost", u.Email)

	again, err := svc.Resolve(ctx, "alice", "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)

	_, err = svc.Resolve(ctx, "  ", "")
	assert.True(t, core.IsValidation(err))
}

func TestUserService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	pub := &recordingPublisher{}
	svc := NewUserService(repo, Hooks{Publisher: pub})
	user := newUser(t, repo, "gone")
	keep := newUser(t, repo, "kept")

	for _, u := range []core.User{user, keep} {
		cat, err := repo.CreateCategory(ctx, core.Category{UserID: u.ID, Name: "Food"})
		require.NoError(t, err)
		_, err = repo.CreateExpense(ctx, core.Expense{UserID: u.ID, Date: core.NewDate(2026, 2, 1), Description: "x", Amount: cents(100), CategoryID: cat.ID})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(ctx, user.ID))

	_, err := repo.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
	n, err := repo.CountExpenses(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.CountExpenses(ctx, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []amqp.EventType{amqp.EventExpensesCleared}, pub.types())
}
