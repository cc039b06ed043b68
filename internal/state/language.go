// Package state holds the small persisted pieces of user state: the selected
// language, the vocabulary level and the notification settings. Each container
// keeps an in-memory value, persists on mutation and leaves the in-memory value
// untouched when the persist step fails.
package state

import (
	"context"
	"fmt"

	"github.com/example/lingobot/internal/storage"
)

// LanguageSelection tracks the currently selected learning language
type LanguageSelection struct {
	store    storage.Store
	code     string
	selected bool
}

// NewLanguageSelection creates an unset selection backed by the store
func NewLanguageSelection(store storage.Store) *LanguageSelection {
	return &LanguageSelection{store: store}
}

// Load populates the selection from the store. An absent key means the user
// has not chosen a language yet.
func (s *LanguageSelection) Load(ctx context.Context) error {
	code, ok, err := s.store.Get(ctx, storage.KeySelectedLanguage)
	if err != nil {
		return fmt.Errorf("failed to load language selection: %v", err)
	}
	if ok {
		s.code = code
		s.selected = true
	} else {
		s.code = ""
		s.selected = false
	}
	return nil
}

// Set persists the selected language code and marks the selection made
func (s *LanguageSelection) Set(ctx context.Context, code string) error {
	if err := s.store.Set(ctx, storage.KeySelectedLanguage, code); err != nil {
		return fmt.Errorf("failed to save language selection: %v", err)
	}
	s.code = code
	s.selected = true
	return nil
}

// Clear removes the persisted selection and resets to the unset state
func (s *LanguageSelection) Clear(ctx context.Context) error {
	if err := s.store.Remove(ctx, storage.KeySelectedLanguage); err != nil {
		return fmt.Errorf("failed to clear language selection: %v", err)
	}
	s.code = ""
	s.selected = false
	return nil
}

// Code returns the selected language code, empty if none is selected
func (s *LanguageSelection) Code() string {
	return s.code
}

// IsSelected reports whether the user has chosen a language
func (s *LanguageSelection) IsSelected() bool {
	return s.selected
}
