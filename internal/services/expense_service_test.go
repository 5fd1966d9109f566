package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/storage"
)

func validExpense() core.Expense {
	return core.Expense{
		Date:        core.NewDate(2026, 3, 14),
		Description: "Lunch",
		Amount:      cents(1250),
		CategoryID:  7,
	}
}

func TestExpenseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid expense is stored and announced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := storage.NewMockStore(ctrl)
		pub := &recordingPublisher{}
		inv := &recordingInvalidator{}
		svc := NewExpenseService(mockStore, Hooks{Publisher: pub, Cache: inv})

		in := validExpense()
		mockStore.EXPECT().GetCategory(ctx, int64(1), int64(7)).Return(core.Category{ID: 7, UserID: 1, Name: "Food"}, nil)
		mockStore.EXPECT().CreateExpense(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e core.Expense) (core.Expense, error) {
				assert.Equal(t, int64(1), e.UserID)
				e.ID = 42
				return e, nil
			})

		got, err := svc.Create(ctx, 1, in)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.ID)

		require.Len(t, pub.events, 1)
		assert.Equal(t, amqp.EventExpenseCreated, pub.events[0].Type)
		assert.Equal(t, []int64{42}, pub.events[0].ExpenseIDs)
		assert.Equal(t, []int64{1}, inv.users)
	})

	t.Run("field validation runs before any store call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := storage.NewMockStore(ctrl)
		svc := NewExpenseService(mockStore, Hooks{})

		bad := validExpense()
		bad.Description = "   "
		_, err := svc.Create(ctx, 1, bad)
		assert.ErrorIs(t, err, core.ErrEmptyDescription)

		bad = validExpense()
		bad.Amount = cents(0)
		_, err = svc.Create(ctx, 1, bad)
		assert.True(t, core.IsValidation(err))
	})

	t.Run("foreign category is a validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := storage.NewMockStore(ctrl)
		svc := NewExpenseService(mockStore, Hooks{})

		mockStore.EXPECT().GetCategory(ctx, int64(1), int64(7)).Return(core.Category{}, core.ErrNotFound)

		_, err := svc.Create(ctx, 1, validExpense())
		require.Error(t, err)
		assert.True(t, core.IsValidation(err))
		assert.Contains(t, err.Error(), "unknown category")
	})

	t.Run("subcategory must belong to the category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := storage.NewMockStore(ctrl)
		svc := NewExpenseService(mockStore, Hooks{})

		in := validExpense()
		in.SubcategoryID = 9
		mockStore.EXPECT().GetCategory(ctx, int64(1), int64(7)).Return(core.Category{ID: 7}, nil)
		mockStore.EXPECT().GetSubcategory(ctx, int64(1), int64(9)).Return(core.Subcategory{ID: 9, CategoryID: 8}, nil)

		_, err := svc.Create(ctx, 1, in)
		require.Error(t, err)
		assert.True(t, core.IsValidation(err))
	})

	t.Run("publisher failure does not fail the write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := storage.NewMockStore(ctrl)
		pub := &recordingPublisher{err: errors.New("broker down")}
		svc := NewExpenseService(mockStore, Hooks{Publisher: pub})

		mockStore.EXPECT().GetCategory(ctx, int64(1), int64(7)).Return(core.Category{ID: 7}, nil)
		mockStore.EXPECT().CreateExpense(ctx, gomock.Any()).Return(core.Expense{ID: 1}, nil)

		_, err := svc.Create(ctx, 1, validExpense())
		assert.NoError(t, err)
		assert.Len(t, pub.events, 1)
	})
}

func TestExpenseService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("missing expense", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := storage.NewMockStore(ctrl)
		svc := NewExpenseService(mockStore, Hooks{})

		in := validExpense()
		in.ID = 5
		mockStore.EXPECT().GetExpense(ctx, int64(1), int64(5)).Return(core.Expense{}, core.ErrNotFound)

		_, err := svc.Update(ctx, 1, in)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("reloads after update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := storage.NewMockStore(ctrl)
		pub := &recordingPublisher{}
		svc := NewExpenseService(mockStore, Hooks{Publisher: pub})

		in := validExpense()
		in.ID = 5
		reloaded := in
		reloaded.UserID = 1
		reloaded.CategoryName = "Food"

		gomock.InOrder(
			mockStore.EXPECT().GetExpense(ctx, int64(1), int64(5)).Return(core.Expense{ID: 5}, nil),
			mockStore.EXPECT().GetCategory(ctx, int64(1), int64(7)).Return(core.Category{ID: 7}, nil),
			mockStore.EXPECT().UpdateExpense(ctx, gomock.Any()).Return(nil),
			mockStore.EXPECT().GetExpense(ctx, int64(1), int64(5)).Return(reloaded, nil),
		)

		got, err := svc.Update(ctx, 1, in)
		require.NoError(t, err)
		assert.Equal(t, "Food", got.CategoryName)
		assert.Equal(t, []amqp.EventType{amqp.EventExpenseUpdated}, pub.types())
	})
}

func TestExpenseService_DeleteAll(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockStore := storage.NewMockStore(ctrl)
	pub := &recordingPublisher{}
	svc := NewExpenseService(mockStore, Hooks{Publisher: pub})

	passTx(mockStore)
	mockStore.EXPECT().DeleteAllExpenses(ctx, int64(3)).Return(int64(12), nil)

	n, err := svc.DeleteAll(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.Equal(t, []amqp.EventType{amqp.EventExpensesCleared}, pub.types())
}

func TestExpenseService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockStore := storage.NewMockStore(ctrl)
	pub := &recordingPublisher{}
	svc := NewExpenseService(mockStore, Hooks{Publisher: pub})

	mockStore.EXPECT().DeleteExpense(ctx, int64(1), int64(99)).Return(core.ErrNotFound)

	err := svc.Delete(ctx, 1, 99)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, pub.types())
}

func TestExpenseService_SampleData(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := newUser(t, repo, "demo")
	svc := NewExpenseService(repo, Hooks{})
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	_, err := repo.CreateCategory(ctx, core.Category{UserID: user.ID, Name: "Transportation"})
	require.NoError(t, err)

	ids, err := svc.SampleData(ctx, user.ID, now)
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	cats, err := repo.ListCategories(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, cats, 3, "existing category is reused")

	all, err := repo.AllExpenses(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2026-03-10", all[0].Date.String())
	assert.Equal(t, "2026-03-09", all[1].Date.String())
	assert.Equal(t, "2026-03-05", all[2].Date.String())
	assert.Equal(t, int64(450), all[0].Amount.Cents)
}
