package history

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/example/lingobot/internal/storage"
	"github.com/example/lingobot/pkg/models"
	"github.com/stretchr/testify/require"
)

func record(word string, ts int64) models.WordRecord {
	return models.WordRecord{
		Word:            word,
		Translation:     word + "-translated",
		Pronunciation:   "[" + word + "]",
		ExampleSentence: word + "!",
		Timestamp:       ts,
	}
}

func TestAddWordThenLoadWordsRoundTrips(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	ledger := NewLedger(store)

	require.NoError(t, ledger.AddWord(ctx, "es", record("hola", 1000)))
	require.NoError(t, ledger.AddWord(ctx, "es", record("adiós", 2000)))
	require.NoError(t, ledger.AddWord(ctx, "es", record("gracias", 3000)))

	// A fresh ledger over the same store sees the same sequence, newest first
	reloaded := NewLedger(store)
	require.NoError(t, reloaded.LoadWords(ctx, "es"))

	words := reloaded.Words("es")
	require.Len(t, words, 3)
	require.Equal(t, "gracias", words[0].Word)
	require.Equal(t, "adiós", words[1].Word)
	require.Equal(t, "hola", words[2].Word)
}

func TestAddWordCapsAtMaxWords(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(storage.NewMemory())

	for i := 0; i <= MaxWords; i++ {
		require.NoError(t, ledger.AddWord(ctx, "fr", record(fmt.Sprintf("mot-%d", i), int64(i))))
	}

	words := ledger.Words("fr")
	require.Len(t, words, MaxWords)
	// Newest kept, oldest dropped
	require.Equal(t, fmt.Sprintf("mot-%d", MaxWords), words[0].Word)
	require.Equal(t, "mot-1", words[MaxWords-1].Word)
}

func TestClearHistoryThenLoadWordsIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	ledger := NewLedger(store)

	require.NoError(t, ledger.AddWord(ctx, "de", record("hallo", 1000)))
	require.NoError(t, ledger.ClearHistory(ctx, "de"))
	require.NoError(t, ledger.LoadWords(ctx, "de"))
	require.Empty(t, ledger.Words("de"))

	_, ok, err := store.Get(ctx, storage.HistoryKey("de"))
	require.NoError(t, err)
	require.False(t, ok, "persisted key should be removed")
}

func TestLoadWordsAbsentKeyIsEmptyNotError(t *testing.T) {
	ledger := NewLedger(storage.NewMemory())
	require.NoError(t, ledger.LoadWords(context.Background(), "it"))
	require.Empty(t, ledger.Words("it"))
}

func TestLoadWordsLeavesOtherLanguagesUntouched(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(storage.NewMemory())

	require.NoError(t, ledger.AddWord(ctx, "es", record("hola", 1000)))
	require.NoError(t, ledger.LoadWords(ctx, "fr"))

	require.Len(t, ledger.Words("es"), 1)
	require.Empty(t, ledger.Words("fr"))
}

func TestAddWordPersistFailureLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	ledger := NewLedger(store)

	require.NoError(t, ledger.AddWord(ctx, "es", record("hola", 1000)))

	store.FailNextSet = errors.New("disk full")
	err := ledger.AddWord(ctx, "es", record("adiós", 2000))
	require.Error(t, err)

	// In-memory state must not diverge from durable state
	words := ledger.Words("es")
	require.Len(t, words, 1)
	require.Equal(t, "hola", words[0].Word)
}

func TestWordsReturnsACopy(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(storage.NewMemory())
	require.NoError(t, ledger.AddWord(ctx, "es", record("hola", 1000)))

	words := ledger.Words("es")
	words[0].Word = "mutated"
	require.Equal(t, "hola", ledger.Words("es")[0].Word)
}

func TestRecentWordTexts(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(storage.NewMemory())

	for i, w := range []string{"uno", "dos", "tres"} {
		require.NoError(t, ledger.AddWord(ctx, "es", record(w, int64(i))))
	}

	require.Equal(t, []string{"tres", "dos"}, ledger.RecentWordTexts("es", 2))
	require.Equal(t, []string{"tres", "dos", "uno"}, ledger.RecentWordTexts("es", 10))
	require.Empty(t, ledger.RecentWordTexts("fr", 5))
}
