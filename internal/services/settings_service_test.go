package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tally/internal/core"
	"tally/internal/storage"
)

func TestSettingsService_LazyDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := newUser(t, repo, "alice")
	svc := NewSettingsService(repo)

	got, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "INR", got.CurrencyCode)
	assert.Equal(t, core.ChartPie, got.ChartType)
	assert.NotZero(t, got.ID)

	again, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, got.ID, again.ID, "defaults are created once")
}

func TestSettingsService_UpdateAndReset(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := newUser(t, repo, "alice")
	svc := NewSettingsService(repo)

	in := core.DefaultSettings(user.ID)
	in.CurrencyCode = "eur"
	in.CurrencySymbol = ""
	in.ChartType = core.ChartBar
	in.ItemsPerPage = 25

	saved, err := svc.Update(ctx, user.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "EUR", saved.CurrencyCode)
	assert.Equal(t, "€", saved.CurrencySymbol)
	assert.Equal(t, core.ChartBar, saved.ChartType)
	assert.Equal(t, 25, saved.ItemsPerPage)

	reset, err := svc.Reset(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "INR", reset.CurrencyCode)
	assert.Equal(t, 10, reset.ItemsPerPage)
	assert.Equal(t, saved.ID, reset.ID)
}

func TestSettingsService_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := newUser(t, repo, "alice")
	svc := NewSettingsService(repo)

	tests := []struct {
		name   string
		mutate func(*core.UserSettings)
		field  string
	}{
		{"currency", func(s *core.UserSettings) { s.CurrencyCode = "XYZ" }, "currency_code"},
		{"decimal places", func(s *core.UserSettings) { s.DecimalPlaces = 7 }, "decimal_places"},
		{"color", func(s *core.UserSettings) { s.PrimaryColor = "blue" }, "primary_color"},
		{"page size", func(s *core.UserSettings) { s.ItemsPerPage = 7 }, "items_per_page"},
		{"chart", func(s *core.UserSettings) { s.ChartType = "radar" }, "chart_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := core.DefaultSettings(user.ID)
			tt.mutate(&in)
			_, err := svc.Update(ctx, user.ID, in)
			var ve *core.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	got, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultSettings(user.ID).CurrencyCode, got.CurrencyCode)
}

func TestSettingsService_CreateRace(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockStore := storage.NewMockStore(ctrl)
	svc := NewSettingsService(mockStore)

	existing := core.DefaultSettings(4)
	existing.ID = 11

	gomock.InOrder(
		mockStore.EXPECT().GetSettings(ctx, int64(4)).Return(core.UserSettings{}, core.ErrNotFound),
		mockStore.EXPECT().CreateSettings(ctx, gomock.Any()).Return(core.UserSettings{}, errors.New("unique constraint")),
		mockStore.EXPECT().GetSettings(ctx, int64(4)).Return(existing, nil),
	)

	got, err := svc.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
}
