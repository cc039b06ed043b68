// Package ai fetches generated vocabulary words from a hosted
// text-generation API speaking the Gemini wire format.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/example/lingobot/internal/language"
	"github.com/example/lingobot/pkg/models"
)

// DefaultAPIURL is the generation endpoint used when none is configured
const DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

var (
	// ErrRequestFailed means the API returned a non-success transport or status result
	ErrRequestFailed = errors.New("generation request failed")
	// ErrMalformedResponse means the API body did not parse as the expected word shape
	ErrMalformedResponse = errors.New("malformed generation response")
)

// Gemini is a client for the generation API
type Gemini struct {
	apiKey string
	apiURL string
	client *http.Client
}

// New creates a Gemini client. An empty apiURL selects the default endpoint.
func New(apiKey, apiURL string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("generation API key is not set")
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	return &Gemini{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{},
	}, nil
}

// generateRequest is the request body for the generation API
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the response body from the generation API
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// generatedWord mirrors the JSON object the model is instructed to emit
type generatedWord struct {
	Word            string `json:"Word"`
	Translation     string `json:"Translation"`
	Pronunciation   string `json:"Pronunciation"`
	ExampleSentence string `json:"Example Sentence"`
}

// FetchWord requests one new word for the language at the given level. The
// recent words are passed along as a best-effort instruction not to repeat
// them; the model is not guaranteed to honor it.
func (g *Gemini) FetchWord(ctx context.Context, languageCode string, level models.VocabularyLevel, recentWords []string) (models.WordRecord, error) {
	lang, err := language.ByCode(languageCode)
	if err != nil {
		return models.WordRecord{}, err
	}

	prompt := g.buildPrompt(lang, level, recentWords)

	request := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return models.WordRecord{}, fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"?key="+g.apiKey, bytes.NewBuffer(requestData))
	if err != nil {
		return models.WordRecord{}, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return models.WordRecord{}, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.WordRecord{}, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var response generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return models.WordRecord{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if response.Error != nil {
		return models.WordRecord{}, fmt.Errorf("%w: %s", ErrRequestFailed, response.Error.Message)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return models.WordRecord{}, fmt.Errorf("%w: no candidates returned", ErrMalformedResponse)
	}

	text := response.Candidates[0].Content.Parts[0].Text
	word, err := parseGeneratedWord(text)
	if err != nil {
		return models.WordRecord{}, err
	}

	return models.WordRecord{
		Word:            word.Word,
		Translation:     word.Translation,
		Pronunciation:   word.Pronunciation,
		ExampleSentence: word.ExampleSentence,
		Timestamp:       time.Now().UnixMilli(),
	}, nil
}

// buildPrompt concatenates the language's base prompt with the level and the
// exclusion list.
func (g *Gemini) buildPrompt(lang language.Language, level models.VocabularyLevel, recentWords []string) string {
	var b strings.Builder
	b.WriteString(lang.Prompt)
	fmt.Fprintf(&b, " The word should match the %s vocabulary level.", level)
	if len(recentWords) > 0 {
		fmt.Fprintf(&b, " Do not repeat any of these words: %s.", strings.Join(recentWords, ", "))
	}
	return b.String()
}

// parseGeneratedWord strips an optional fenced code block around the model's
// output and parses the remainder as the expected JSON object.
func parseGeneratedWord(text string) (generatedWord, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	cleaned = strings.TrimSpace(cleaned)

	var word generatedWord
	if err := json.Unmarshal([]byte(cleaned), &word); err != nil {
		return generatedWord{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if word.Word == "" {
		return generatedWord{}, fmt.Errorf("%w: empty word", ErrMalformedResponse)
	}
	return word, nil
}
