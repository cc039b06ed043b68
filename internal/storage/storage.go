package storage

import "context"

// Storage keys used by the application. The key space is flat; the names are
// part of the persisted format and must not change between releases.
const (
	KeySelectedLanguage     = "selectedLanguage"
	KeyVocabularyLevel      = "@vocabulary_level"
	KeyNotificationSettings = "notification-settings"
)

// HistoryKey returns the storage key holding the word history for a language.
func HistoryKey(languageCode string) string {
	return "recent_" + languageCode + "_words"
}

// Store is a durable string-keyed store. Get reports ok=false for an absent
// key instead of an error. Operations are atomic per key; there are no
// cross-key transactions, so concurrent writers to the same key are
// last-writer-wins.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
