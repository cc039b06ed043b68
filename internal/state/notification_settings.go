package state

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/lingobot/internal/storage"
	"github.com/example/lingobot/pkg/models"
)

// NotificationSettings tracks the reminder preferences, persisted as one JSON blob
type NotificationSettings struct {
	store    storage.Store
	settings models.NotificationSettings
}

// NewNotificationSettings creates a settings container with the defaults applied
func NewNotificationSettings(store storage.Store) *NotificationSettings {
	return &NotificationSettings{store: store, settings: models.DefaultNotificationSettings()}
}

// Load populates the settings from the store. An absent key keeps the defaults;
// a blob that no longer parses also keeps the defaults and reports the error.
func (s *NotificationSettings) Load(ctx context.Context) error {
	value, ok, err := s.store.Get(ctx, storage.KeyNotificationSettings)
	if err != nil {
		return fmt.Errorf("failed to load notification settings: %v", err)
	}
	if !ok {
		return nil
	}

	var settings models.NotificationSettings
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		return fmt.Errorf("failed to parse notification settings: %v", err)
	}
	s.settings = settings
	return nil
}

// Update applies fn to a copy of the settings and persists the result. The
// in-memory settings change only after a successful persist.
func (s *NotificationSettings) Update(ctx context.Context, fn func(*models.NotificationSettings)) error {
	updated := s.settings
	fn(&updated)

	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("failed to marshal notification settings: %v", err)
	}
	if err := s.store.Set(ctx, storage.KeyNotificationSettings, string(data)); err != nil {
		return fmt.Errorf("failed to save notification settings: %v", err)
	}

	s.settings = updated
	return nil
}

// Settings returns the current notification settings
func (s *NotificationSettings) Settings() models.NotificationSettings {
	return s.settings
}
