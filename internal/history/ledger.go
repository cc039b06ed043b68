// Package history maintains the per-language word history: a recency-ordered,
// bounded list of learned words persisted under one storage key per language.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/lingobot/internal/storage"
	"github.com/example/lingobot/pkg/models"
)

// MaxWords caps how many records are kept per language. Older records fall off
// the end.
const MaxWords = 1000

// Ledger holds the in-memory word history for each language and mirrors it to
// the persistent store. Records are newest first; the only mutation is
// prepend-and-trim, so the order is always non-increasing by timestamp.
type Ledger struct {
	store       storage.Store
	recentWords map[string][]models.WordRecord
}

// NewLedger creates an empty ledger backed by the store
func NewLedger(store storage.Store) *Ledger {
	return &Ledger{
		store:       store,
		recentWords: make(map[string][]models.WordRecord),
	}
}

// AddWord prepends the record to the language's history, trims to MaxWords and
// persists the result. The in-memory state is updated only after a successful
// persist, so memory never diverges from durable state.
func (l *Ledger) AddWord(ctx context.Context, languageCode string, record models.WordRecord) error {
	current := l.recentWords[languageCode]

	updated := make([]models.WordRecord, 0, len(current)+1)
	updated = append(updated, record)
	updated = append(updated, current...)
	if len(updated) > MaxWords {
		updated = updated[:MaxWords]
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("failed to marshal word history: %v", err)
	}
	if err := l.store.Set(ctx, storage.HistoryKey(languageCode), string(data)); err != nil {
		return fmt.Errorf("failed to save word history: %v", err)
	}

	l.recentWords[languageCode] = updated
	return nil
}

// LoadWords populates the in-memory history for one language from the store.
// An absent key is an empty history, not an error. Other languages' in-memory
// entries are untouched.
func (l *Ledger) LoadWords(ctx context.Context, languageCode string) error {
	value, ok, err := l.store.Get(ctx, storage.HistoryKey(languageCode))
	if err != nil {
		return fmt.Errorf("failed to load word history: %v", err)
	}
	if !ok {
		l.recentWords[languageCode] = nil
		return nil
	}

	var words []models.WordRecord
	if err := json.Unmarshal([]byte(value), &words); err != nil {
		return fmt.Errorf("failed to parse word history: %v", err)
	}
	l.recentWords[languageCode] = words
	return nil
}

// ClearHistory deletes the persisted history for one language and resets its
// in-memory entries.
func (l *Ledger) ClearHistory(ctx context.Context, languageCode string) error {
	if err := l.store.Remove(ctx, storage.HistoryKey(languageCode)); err != nil {
		return fmt.Errorf("failed to clear word history: %v", err)
	}
	l.recentWords[languageCode] = nil
	return nil
}

// Words returns a copy of the in-memory history for one language, newest first
func (l *Ledger) Words(languageCode string) []models.WordRecord {
	current := l.recentWords[languageCode]
	if len(current) == 0 {
		return nil
	}
	words := make([]models.WordRecord, len(current))
	copy(words, current)
	return words
}

// RecentWordTexts returns just the word strings of the newest records, up to
// limit, for building the generation prompt's exclusion list.
func (l *Ledger) RecentWordTexts(languageCode string, limit int) []string {
	current := l.recentWords[languageCode]
	if limit > len(current) {
		limit = len(current)
	}
	texts := make([]string, 0, limit)
	for _, record := range current[:limit] {
		texts = append(texts, record.Word)
	}
	return texts
}
