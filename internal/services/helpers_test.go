package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/storage"
)

func newRepo(t *testing.T) *storage.Repository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newUser(t *testing.T, repo *storage.Repository, name string) core.User {
	t.Helper()
	u, err := repo.EnsureUser(context.Background(), name, name+"@example.com")
	require.NoError(t, err)
	return u
}

// passTx makes WithTx on the mock run fn against the same mock.
func passTx(m *storage.MockStore) {
	m.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(storage.Store) error) error {
			return fn(m)
		}).AnyTimes()
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*amqp.ExpenseEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e *amqp.ExpenseEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []amqp.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]amqp.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type recordingInvalidator struct {
	users []int64
}

func (r *recordingInvalidator) Invalidate(userID int64) {
	r.users = append(r.users, userID)
}

func cents(c int64) core.Money { return core.Money{Cents: c} }
