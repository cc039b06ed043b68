package state

import (
	"context"
	"fmt"

	"github.com/example/lingobot/internal/storage"
	"github.com/example/lingobot/pkg/models"
)

// VocabularyLevel tracks the selected difficulty tier, beginner by default
type VocabularyLevel struct {
	store storage.Store
	level models.VocabularyLevel
}

// NewVocabularyLevel creates a level container defaulting to beginner
func NewVocabularyLevel(store storage.Store) *VocabularyLevel {
	return &VocabularyLevel{store: store, level: models.LevelBeginner}
}

// Load populates the level from the store. Absent or unrecognized values keep
// the beginner default.
func (s *VocabularyLevel) Load(ctx context.Context) error {
	value, ok, err := s.store.Get(ctx, storage.KeyVocabularyLevel)
	if err != nil {
		return fmt.Errorf("failed to load vocabulary level: %v", err)
	}
	if ok && models.VocabularyLevel(value).Valid() {
		s.level = models.VocabularyLevel(value)
	}
	return nil
}

// Set persists the level and updates the in-memory value
func (s *VocabularyLevel) Set(ctx context.Context, level models.VocabularyLevel) error {
	if !level.Valid() {
		return fmt.Errorf("invalid vocabulary level: %s", level)
	}
	if err := s.store.Set(ctx, storage.KeyVocabularyLevel, string(level)); err != nil {
		return fmt.Errorf("failed to save vocabulary level: %v", err)
	}
	s.level = level
	return nil
}

// Level returns the current vocabulary level
func (s *VocabularyLevel) Level() models.VocabularyLevel {
	return s.level
}
