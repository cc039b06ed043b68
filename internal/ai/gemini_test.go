package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/lingobot/internal/language"
	"github.com/example/lingobot/pkg/models"
	"github.com/stretchr/testify/require"
)

func candidateResponse(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(body)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Gemini, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New("test-key", server.URL)
	require.NoError(t, err)
	return client, server
}

func TestFetchWordParsesFencedJSON(t *testing.T) {
	text := "```json\n{\"Word\":\"Hola\",\"Translation\":\"Hello\",\"Pronunciation\":\"[hola]\",\"Example Sentence\":\"Hola!\"}\n```"
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse(text)))
	})

	record, err := client.FetchWord(context.Background(), "es", models.LevelBeginner, nil)
	require.NoError(t, err)
	require.Equal(t, "Hola", record.Word)
	require.Equal(t, "Hello", record.Translation)
	require.Equal(t, "[hola]", record.Pronunciation)
	require.Equal(t, "Hola!", record.ExampleSentence)
	require.NotZero(t, record.Timestamp)
}

func TestFetchWordParsesBareJSON(t *testing.T) {
	text := `{"Word":"Bonjour","Translation":"Hello","Pronunciation":"[bonjour]","Example Sentence":"Bonjour!"}`
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse(text)))
	})

	record, err := client.FetchWord(context.Background(), "fr", models.LevelExpert, nil)
	require.NoError(t, err)
	require.Equal(t, "Bonjour", record.Word)
}

func TestFetchWordRequestBody(t *testing.T) {
	var got struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	var gotKey string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(candidateResponse(`{"Word":"Hallo","Translation":"Hello","Pronunciation":"[hallo]","Example Sentence":"Hallo!"}`)))
	})

	_, err := client.FetchWord(context.Background(), "de", models.LevelAdvanced, []string{"Hund", "Katze"})
	require.NoError(t, err)

	require.Equal(t, "test-key", gotKey)
	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)

	prompt := got.Contents[0].Parts[0].Text
	require.Contains(t, prompt, "I want to learn German.")
	require.Contains(t, prompt, "advanced vocabulary level")
	require.Contains(t, prompt, "Do not repeat any of these words: Hund, Katze.")
}

func TestFetchWordUnknownLanguage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an unknown language")
	})

	_, err := client.FetchWord(context.Background(), "xx", models.LevelBeginner, nil)
	require.ErrorIs(t, err, language.ErrUnknownLanguage)
}

func TestFetchWordNonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.FetchWord(context.Background(), "es", models.LevelBeginner, nil)
	require.ErrorIs(t, err, ErrRequestFailed)
}

func TestFetchWordMalformedCases(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json at all", body: "internal error"},
		{name: "no candidates", body: `{"candidates":[]}`},
		{name: "candidate text is not json", body: candidateResponse("Sure! Here is your word: Hola")},
		{name: "candidate json misses the word", body: candidateResponse(`{"Translation":"Hello"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := client.FetchWord(context.Background(), "es", models.LevelBeginner, nil)
			require.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestFetchWordAPIErrorField(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	})

	_, err := client.FetchWord(context.Background(), "es", models.LevelBeginner, nil)
	require.ErrorIs(t, err, ErrRequestFailed)
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestParseGeneratedWordStripsFences(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "json fence", text: "```json\n{\"Word\":\"Ciao\"}\n```"},
		{name: "bare fence", text: "```\n{\"Word\":\"Ciao\"}\n```"},
		{name: "no fence", text: `{"Word":"Ciao"}`},
		{name: "surrounding whitespace", text: "  \n```json\n{\"Word\":\"Ciao\"}\n```\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, err := parseGeneratedWord(tt.text)
			require.NoError(t, err)
			require.Equal(t, "Ciao", word.Word)
		})
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("", "")
	require.Error(t, err)
}

func TestNewDefaultsEndpoint(t *testing.T) {
	client, err := New("key", "")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(client.apiURL, "https://"))
}
