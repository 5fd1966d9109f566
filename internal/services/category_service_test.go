package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/core"
)

func TestCategoryService_CreateAndRename(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := newUser(t, repo, "alice")
	other := newUser(t, repo, "bob")
	inv := &recordingInvalidator{}
	svc := NewCategoryService(repo, Hooks{Cache: inv})

	food, err := svc.Create(ctx, user.ID, "  Food ", "meals")
	require.NoError(t, err)
	assert.Equal(t, "Food", food.Name)

	_, err = svc.Create(ctx, user.ID, "Food", "")
	require.Error(t, err)
	assert.True(t, core.IsValidation(err), "duplicate names are rejected")

	_, err = svc.Create(ctx, other.ID, "Food", "")
	assert.NoError(t, err, "names are scoped per user")

	_, err = svc.Create(ctx, user.ID, "", "")
	assert.ErrorIs(t, err, core.ErrEmptyName)

	renamed, err := svc.Update(ctx, user.ID, food.ID, "Groceries", "")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", renamed.Name)
	assert.Contains(t, inv.users, user.ID)

	_, err = svc.Update(ctx, user.ID, food.ID, "Groceries", "same name is fine")
	assert.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, food.ID, "Stolen", "")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCategoryService_DeleteBlockedByExpenses(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := newUser(t, repo, "alice")
	svc := NewCategoryService(repo, Hooks{})

	used, err := svc.Create(ctx, user.ID, "Food", "")
	require.NoError(t, err)
	sub, err := svc.CreateSubcategory(ctx, user.ID, used.ID, "Snacks")
	require.NoError(t, err)
	_, err = repo.CreateExpense(ctx, core.Expense{UserID: user.ID, Date: core.NewDate(2026, 1, 1), Description: "chips", Amount: cents(200), CategoryID: used.ID, SubcategoryID: sub.ID})
	require.NoError(t, err)

	err = svc.Delete(ctx, user.ID, used.ID)
	assert.ErrorIs(t, err, core.ErrInUse)
	_, err = svc.DeleteSubcategory(ctx, user.ID, sub.ID)
	assert.ErrorIs(t, err, core.ErrInUse)

	still, err := svc.Get(ctx, user.ID, used.ID)
	require.NoError(t, err)
	assert.Len(t, still.Subcategories, 1)

	empty, err := svc.Create(ctx, user.ID, "Spare", "")
	require.NoError(t, err)
	_, err = svc.CreateSubcategory(ctx, user.ID, empty.ID, "Unused")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, user.ID, empty.ID))
	_, err = svc.Get(ctx, user.ID, empty.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCategoryService_Subcategories(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := newUser(t, repo, "alice")
	other := newUser(t, repo, "eve")
	svc := NewCategoryService(repo, Hooks{})

	food, _ := svc.Create(ctx, user.ID, "Food", "")
	for _, name := range []string{"Lunch", "Breakfast"} {
		_, err := svc.CreateSubcategory(ctx, user.ID, food.ID, name)
		require.NoError(t, err)
	}

	_, err := svc.CreateSubcategory(ctx, user.ID, food.ID, "Lunch")
	assert.True(t, core.IsValidation(err))

	subs, err := svc.Subcategories(ctx, user.ID, food.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Breakfast", subs[0].Name)

	_, err = svc.Subcategories(ctx, other.ID, food.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = svc.CreateSubcategory(ctx, other.ID, food.ID, "Sneaky")
	assert.ErrorIs(t, err, core.ErrNotFound)

	renamed, err := svc.UpdateSubcategory(ctx, user.ID, subs[0].ID, "Brunch")
	require.NoError(t, err)
	assert.Equal(t, "Brunch", renamed.Name)
	_, err = svc.UpdateSubcategory(ctx, user.ID, subs[0].ID, "Lunch")
	assert.True(t, core.IsValidation(err))

	deleted, err := svc.DeleteSubcategory(ctx, user.ID, subs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Brunch", deleted.Name)
}
