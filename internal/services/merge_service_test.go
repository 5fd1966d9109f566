package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/amqp"
	"tally/internal/core"
)

func TestMergeCategories_FoodIntoDining(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := newUser(t, repo, "alice")
	pub := &recordingPublisher{}
	inv := &recordingInvalidator{}
	merge := NewMergeService(repo, Hooks{Publisher: pub, Cache: inv})

	food, err := repo.CreateCategory(ctx, core.Category{UserID: user.ID, Name: "Food"})
	require.NoError(t, err)
	dining, err := repo.CreateCategory(ctx, core.Category{UserID: user.ID, Name: "Dining"})
	require.NoError(t, err)
	foodFast, err := repo.CreateSubcategory(ctx, core.Subcategory{CategoryID: food.ID, Name: "Fast Food"})
	require.NoError(t, err)
	diningFast, err := repo.CreateSubcategory(ctx, core.Subcategory{CategoryID: dining.ID, Name: "Fast Food"})
	require.NoError(t, err)

	_, err = repo.CreateExpense(ctx, core.Expense{UserID: user.ID, Date: core.NewDate(2026, 3, 1), Description: "Burger", Amount: cents(5000), CategoryID: food.ID, SubcategoryID: foodFast.ID})
	require.NoError(t, err)
	_, err = repo.CreateExpense(ctx, core.Expense{UserID: user.ID, Date: core.NewDate(2026, 3, 2), Description: "Pizza", Amount: cents(2000), CategoryID: dining.ID, SubcategoryID: diningFast.ID})
	require.NoError(t, err)

	res, err := merge.MergeCategories(ctx, user.ID, food.ID, dining.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ExpensesMoved)
	assert.Equal(t, []string{"Fast Food (from Food)"}, res.Renamed)

	_, err = repo.GetCategory(ctx, user.ID, food.ID)
	assert.True(t, errors.Is(err, core.ErrNotFound), "source category should be gone")

	n, err := repo.CountCategoryExpenses(ctx, user.ID, food.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	merged, err := repo.GetCategory(ctx, user.ID, dining.ID)
	require.NoError(t, err)
	var names []string
	for _, s := range merged.Subcategories {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Fast Food", "Fast Food (from Food)"}, names)

	total, err := repo.SumByCategory(ctx, user.ID, core.AllTime())
	require.NoError(t, err)
	require.Len(t, total, 1)
	assert.Equal(t, "Dining", total[0].Name)
	assert.Equal(t, int64(7000), total[0].Amount.Cents)

	// The moved expense still resolves its subcategory under the target
	page, err := repo.ListExpenses(ctx, user.ID, core.ExpenseFilter{Search: "burger"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Fast Food (from Food)", page.Items[0].SubcategoryName)
	assert.Equal(t, dining.ID, page.Items[0].CategoryID)

	assert.Equal(t, []amqp.EventType{amqp.EventCategoryMerged}, pub.types())
	assert.Equal(t, []int64{user.ID}, inv.users)
}

func TestMergeCategories_RenameCollisionSuffix(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := newUser(t, repo, "bob")
	merge := NewMergeService(repo, Hooks{})

	src, _ := repo.CreateCategory(ctx, core.Category{UserID: user.ID, Name: "Food"})
	dst, _ := repo.CreateCategory(ctx, core.Category{UserID: user.ID, Name: "Dining"})
	_, err := repo.CreateSubcategory(ctx, core.Subcategory{CategoryID: src.ID, Name: "Lunch"})
	require.NoError(t, err)
	for _, name := range []string{"Lunch (from Food)", "Lunch (from Food) 1"} {
		_, err := repo.CreateSubcategory(ctx, core.Subcategory{CategoryID: dst.ID, Name: name})
		require.NoError(t, err)
	}

	res, err := merge.MergeCategories(ctx, user.ID, src.ID, dst.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lunch (from Food) 2"}, res.Renamed)
}

func TestMergeCategories_Rejections(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	alice := newUser(t, repo, "alice")
	mallory := newUser(t, repo, "mallory")
	pub := &recordingPublisher{}
	merge := NewMergeService(repo, Hooks{Publisher: pub})

	a, _ := repo.CreateCategory(ctx, core.Category{UserID: alice.ID, Name: "A"})
	_, err := repo.CreateExpense(ctx, core.Expense{UserID: alice.ID, Date: core.NewDate(2026, 1, 1), Description: "x", Amount: cents(100), CategoryID: a.ID})
	require.NoError(t, err)
	foreign, _ := repo.CreateCategory(ctx, core.Category{UserID: mallory.ID, Name: "B"})

	t.Run("same source and target", func(t *testing.T) {
		_, err := merge.MergeCategories(ctx, alice.ID, a.ID, a.ID)
		require.Error(t, err)
		assert.True(t, core.IsValidation(err))

		got, err := repo.GetCategory(ctx, alice.ID, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "A", got.Name)
		n, _ := repo.CountCategoryExpenses(ctx, alice.ID, a.ID)
		assert.Equal(t, 1, n)
	})

	t.Run("target owned by someone else", func(t *testing.T) {
		_, err := merge.MergeCategories(ctx, alice.ID, a.ID, foreign.ID)
		assert.True(t, errors.Is(err, core.ErrNotFound))

		n, _ := repo.CountCategoryExpenses(ctx, alice.ID, a.ID)
		assert.Equal(t, 1, n, "nothing may move on failure")
	})

	assert.Empty(t, pub.types())
}

func TestMergeSubcategories(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := newUser(t, repo, "carol")
	merge := NewMergeService(repo, Hooks{})

	food, _ := repo.CreateCategory(ctx, core.Category{UserID: user.ID, Name: "Food"})
	travel, _ := repo.CreateCategory(ctx, core.Category{UserID: user.ID, Name: "Travel"})
	snacks, _ := repo.CreateSubcategory(ctx, core.Subcategory{CategoryID: food.ID, Name: "Snacks"})
	treats, _ := repo.CreateSubcategory(ctx, core.Subcategory{CategoryID: food.ID, Name: "Treats"})
	trains, _ := repo.CreateSubcategory(ctx, core.Subcategory{CategoryID: travel.ID, Name: "Trains"})

	for i := 0; i < 2; i++ {
		_, err := repo.CreateExpense(ctx, core.Expense{UserID: user.ID, Date: core.NewDate(2026, 1, 1), Description: "chips", Amount: cents(300), CategoryID: food.ID, SubcategoryID: snacks.ID})
		require.NoError(t, err)
	}

	t.Run("different parents", func(t *testing.T) {
		_, err := merge.MergeSubcategories(ctx, user.ID, snacks.ID, trains.ID)
		require.Error(t, err)
		assert.True(t, core.IsValidation(err))
	})

	t.Run("same subcategory", func(t *testing.T) {
		_, err := merge.MergeSubcategories(ctx, user.ID, snacks.ID, snacks.ID)
		assert.True(t, core.IsValidation(err))
	})

	t.Run("moves expenses and deletes source", func(t *testing.T) {
		res, err := merge.MergeSubcategories(ctx, user.ID, snacks.ID, treats.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.ExpensesMoved)

		_, err = repo.GetSubcategory(ctx, user.ID, snacks.ID)
		assert.True(t, errors.Is(err, core.ErrNotFound))
		n, err := repo.CountSubcategoryExpenses(ctx, treats.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

// failingStore passes every call through except the one write that fails.
type failingStore struct {
	Store
	failDeleteCategory    bool
	failDeleteSubcategory bool
}

var errWriteFailed = errors.New("write failed")

func (f *failingStore) WithTx(ctx context.Context, fn func(Store) error) error {
	return f.Store.WithTx(ctx, func(tx Store) error {
		return fn(&failingStore{
			Store:                 tx,
			failDeleteCategory:    f.failDeleteCategory,
			failDeleteSubcategory: f.failDeleteSubcategory,
		})
	})
}

func (f *failingStore) DeleteCategory(ctx context.Context, userID, id int64) error {
	if f.failDeleteCategory {
		return errWriteFailed
	}
	return f.Store.DeleteCategory(ctx, userID, id)
}

func (f *failingStore) DeleteSubcategory(ctx context.Context, id int64) error {
	if f.failDeleteSubcategory {
		return errWriteFailed
	}
	return f.Store.DeleteSubcategory(ctx, id)
}

func TestMergeCategories_RollsBackOnLateFailure(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := newUser(t, repo, "dave")
	pub := &recordingPublisher{}
	merge := NewMergeService(&failingStore{Store: repo, failDeleteCategory: true}, Hooks{Publisher: pub})

	src, err := repo.CreateCategory(ctx, core.Category{UserID: user.ID, Name: "Food"})
	require.NoError(t, err)
	dst, err := repo.CreateCategory(ctx, core.Category{UserID: user.ID, Name: "Dining"})
	require.NoError(t, err)
	sub, err := repo.CreateSubcategory(ctx, core.Subcategory{CategoryID: src.ID, Name: "Snacks"})
	require.NoError(t, err)
	_, err = repo.CreateExpense(ctx, core.Expense{UserID: user.ID, Date: core.NewDate(2026, 2, 1), Description: "chips", Amount: cents(300), CategoryID: src.ID, SubcategoryID: sub.ID})
	require.NoError(t, err)

	_, err = merge.MergeCategories(ctx, user.ID, src.ID, dst.ID)
	require.ErrorIs(t, err, errWriteFailed)

	n, err := repo.CountCategoryExpenses(ctx, user.ID, src.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "expenses must stay on the source")

	got, err := repo.GetCategory(ctx, user.ID, src.ID)
	require.NoError(t, err)
	require.Len(t, got.Subcategories, 1)
	assert.Equal(t, "Snacks", got.Subcategories[0].Name)

	target, err := repo.GetCategory(ctx, user.ID, dst.ID)
	require.NoError(t, err)
	assert.Empty(t, target.Subcategories)
	assert.Empty(t, pub.types())
}

func TestMergeSubcategories_RollsBackOnLateFailure(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := newUser(t, repo, "erin")
	merge := NewMergeService(&failingStore{Store: repo, failDeleteSubcategory: true}, Hooks{})

	food, err := repo.CreateCategory(ctx, core.Category{UserID: user.ID, Name: "Food"})
	require.NoError(t, err)
	snacks, err := repo.CreateSubcategory(ctx, core.Subcategory{CategoryID: food.ID, Name: "Snacks"})
	require.NoError(t, err)
	treats, err := repo.CreateSubcategory(ctx, core.Subcategory{CategoryID: food.ID, Name: "Treats"})
	require.NoError(t, err)
	_, err = repo.CreateExpense(ctx, core.Expense{UserID: user.ID, Date: core.NewDate(2026, 2, 1), Description: "chips", Amount: cents(300), CategoryID: food.ID, SubcategoryID: snacks.ID})
	require.NoError(t, err)

	_, err = merge.MergeSubcategories(ctx, user.ID, snacks.ID, treats.ID)
	require.ErrorIs(t, err, errWriteFailed)

	n, err := repo.CountSubcategoryExpenses(ctx, snacks.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "expenses must stay on the source")
	n, err = repo.CountSubcategoryExpenses(ctx, treats.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = repo.GetSubcategory(ctx, user.ID, snacks.ID)
	assert.NoError(t, err)
}
