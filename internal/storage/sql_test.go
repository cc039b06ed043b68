package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// The SQL store is exercised against SQLite; the Memory store against its map.
// Both must satisfy the same contract.
func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlStore, err := Open(t.TempDir(), "")
	require.NoError(t, err)
	t.Cleanup(func() { sqlStore.Close() })

	return map[string]Store{
		"sql":    sqlStore,
		"memory": NewMemory(),
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			// Absent key: ok=false, no error
			_, ok, err := store.Get(ctx, "missing")
			require.NoError(t, err)
			require.False(t, ok)

			// Set then get
			require.NoError(t, store.Set(ctx, "selectedLanguage", "es"))
			value, ok, err := store.Get(ctx, "selectedLanguage")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "es", value)

			// Overwrite wins
			require.NoError(t, store.Set(ctx, "selectedLanguage", "fr"))
			value, _, err = store.Get(ctx, "selectedLanguage")
			require.NoError(t, err)
			require.Equal(t, "fr", value)

			// Remove; removing again is not an error
			require.NoError(t, store.Remove(ctx, "selectedLanguage"))
			_, ok, err = store.Get(ctx, "selectedLanguage")
			require.NoError(t, err)
			require.False(t, ok)
			require.NoError(t, store.Remove(ctx, "selectedLanguage"))

			// Clear drops every key
			require.NoError(t, store.Set(ctx, "a", "1"))
			require.NoError(t, store.Set(ctx, "b", "2"))
			require.NoError(t, store.Clear(ctx))
			_, ok, err = store.Get(ctx, "a")
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestSQLStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(dir, "")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "@vocabulary_level", "expert"))
	require.NoError(t, store.Close())

	reopened, err := Open(dir, "")
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "@vocabulary_level")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "expert", value)
}

func TestHistoryKey(t *testing.T) {
	require.Equal(t, "recent_es_words", HistoryKey("es"))
}
