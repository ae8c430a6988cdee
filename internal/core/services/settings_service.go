package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

type SettingsService struct {
	stores *StoreRegistry
}

func NewSettingsService(stores *StoreRegistry) *SettingsService {
	return &SettingsService{
		stores: stores,
	}
}

type UpdateNotificationsInput struct {
	UserID  string
	Enabled *bool
	Time    string
}

func (s *SettingsService) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	store, err := s.stores.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings := store.Settings()
	return &settings, nil
}

// UpdateNotifications validates the reminder time before touching the enabled flag,
// so a bad request leaves the settings unchanged.
func (s *SettingsService) UpdateNotifications(ctx context.Context, input UpdateNotificationsInput) (*domain.Settings, error) {
	store, err := s.stores.ForUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Time != "" {
		if err := store.SetNotificationTime(input.Time); err != nil {
			return nil, err
		}
	}
	if input.Enabled != nil {
		store.SetNotificationsEnabled(*input.Enabled)
	}

	settings := store.Settings()
	return &settings, nil
}

// SetProfilePicture stores uri verbatim; a nil uri removes the picture.
func (s *SettingsService) SetProfilePicture(ctx context.Context, userID string, uri *string) (*domain.Settings, error) {
	store, err := s.stores.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	store.SetProfilePicture(uri)

	settings := store.Settings()
	return &settings, nil
}
