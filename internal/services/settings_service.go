package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tally/internal/core"
)

// SettingsService reads and writes per-user display preferences.
type SettingsService struct {
	store Store
}

func NewSettingsService(store Store) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns the user's settings, creating the defaults on first access.
func (s *SettingsService) Get(ctx context.Context, userID int64) (core.UserSettings, error) {
	return getOrCreateSettings(ctx, s.store, userID)
}

// Update validates and stores in as the user's settings.
func (s *SettingsService) Update(ctx context.Context, userID int64, in core.UserSettings) (core.UserSettings, error) {
	in.UserID = userID
	in.Normalize()
	if err := in.Validate(); err != nil {
		return core.UserSettings{}, err
	}

	var saved core.UserSettings
	err := s.store.WithTx(ctx, func(tx Store) error {
		current, err := getOrCreateSettings(ctx, tx, userID)
		if err != nil {
			return err
		}
		in.ID = current.ID
		in.CreatedAt = current.CreatedAt
		if err := tx.UpdateSettings(ctx, in); err != nil {
			return fmt.Errorf("update settings: %w", err)
		}
		saved, err = tx.GetSettings(ctx, userID)
		return err
	})
	if err != nil {
		return core.UserSettings{}, err
	}

	slog.InfoContext(ctx, "Settings updated", "component", "settings", "user_id", userID)
	return saved, nil
}

// Reset restores the defaults.
func (s *SettingsService) Reset(ctx context.Context, userID int64) (core.UserSettings, error) {
	return s.Update(ctx, userID, core.DefaultSettings(userID))
}

func getOrCreateSettings(ctx context.Context, st Store, userID int64) (core.UserSettings, error) {
	settings, err := st.GetSettings(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return core.UserSettings{}, fmt.Errorf("get settings: %w", err)
	}

	settings, err = st.CreateSettings(ctx, core.DefaultSettings(userID))
	if err != nil {
		// A concurrent request may have created them first.
		if existing, getErr := st.GetSettings(ctx, userID); getErr == nil {
			return existing, nil
		}
		return core.UserSettings{}, fmt.Errorf("create settings: %w", err)
	}
	return settings, nil
}
