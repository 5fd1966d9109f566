package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/sheets/memory"
	"tally/internal/storage"
)

func stored(id int64) core.Expense {
	return core.Expense{
		ID:           id,
		UserID:       1,
		Date:         core.NewDate(2026, 2, 1),
		Description:  "item",
		Amount:       core.Money{Cents: 100 * id},
		CategoryID:   3,
		CategoryName: "Food",
	}
}

func TestMirrorWorker_AppendsInBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := storage.NewMockStore(ctrl)
	mockStore.EXPECT().GetExpense(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, id int64) (core.Expense, error) {
			if id == 2 {
				return core.Expense{}, core.ErrNotFound
			}
			return stored(id), nil
		}).Times(4)

	mirror := memory.New()
	w := NewMirrorWorker(mockStore, mirror, 2)

	err := w.HandleEvent(context.Background(), amqp.NewExpenseEvent(amqp.EventExpensesImported, 1, 1, 2, 3, 4))
	require.NoError(t, err)

	rows := mirror.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, []int64{1, 3, 4}, []int64{rows[0].ID, rows[1].ID, rows[2].ID})
}

func TestMirrorWorker_UpdateReplacesRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := storage.NewMockStore(ctrl)

	mirror := memory.New()
	_, err := mirror.Append(context.Background(), []core.Expense{stored(5)})
	require.NoError(t, err)

	updated := stored(5)
	updated.Description = "renamed"
	mockStore.EXPECT().GetExpense(gomock.Any(), int64(1), int64(5)).Return(updated, nil)

	w := NewMirrorWorker(mockStore, mirror, 10)
	require.NoError(t, w.HandleEvent(context.Background(), amqp.NewExpenseEvent(amqp.EventExpenseUpdated, 1, 5)))

	rows := mirror.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "renamed", rows[0].Description)
}

func TestMirrorWorker_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	mirror := memory.New()
	_, err := mirror.Append(ctx, []core.Expense{stored(1), stored(2), stored(3)})
	require.NoError(t, err)

	w := NewMirrorWorker(nil, mirror, 10)

	require.NoError(t, w.HandleEvent(ctx, amqp.NewExpenseEvent(amqp.EventExpenseDeleted, 1, 2)))
	assert.Len(t, mirror.Rows(), 2)

	// A delete event without ids leaves rows alone
	require.NoError(t, w.HandleEvent(ctx, amqp.NewExpenseEvent(amqp.EventExpenseDeleted, 1)))
	assert.Len(t, mirror.Rows(), 2)

	require.NoError(t, w.HandleEvent(ctx, amqp.NewExpenseEvent(amqp.EventCategoryMerged, 1)))
	assert.Len(t, mirror.Rows(), 2)

	require.NoError(t, w.HandleEvent(ctx, amqp.NewExpenseEvent(amqp.EventExpensesCleared, 1)))
	assert.Empty(t, mirror.Rows())
}

func TestMirrorWorker_StoreErrorIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := storage.NewMockStore(ctrl)
	mockStore.EXPECT().GetExpense(gomock.Any(), int64(1), int64(9)).Return(core.Expense{}, errors.New("database is locked"))

	w := NewMirrorWorker(mockStore, memory.New(), 10)
	err := w.HandleEvent(context.Background(), amqp.NewExpenseEvent(amqp.EventExpenseCreated, 1, 9))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
}
