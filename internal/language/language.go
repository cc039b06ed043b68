package language

import "errors"

// ErrUnknownLanguage is returned when a language code is not in the table
var ErrUnknownLanguage = errors.New("unknown language code")

// Language describes one learnable language: its short code, display name and
// the base prompt sent to the generation API.
type Language struct {
	Code   string
	Name   string
	Prompt string
}

// Supported lists every language the bot can teach
var Supported = []Language{
	{
		Code: "tr",
		Name: "Turkish",
		Prompt: "I want to learn Turkish. Send me a random word in Turkish and its translation in English. " +
			"Also send me the pronunciation of the word in Turkish. " +
			"Use the following format: Word: Turkish word, Translation: English translation, " +
			"Pronunciation: Pronunciation of the word in Turkish. Example Sentence: An example sentence in Turkish. " +
			"Example: Word: Merhaba, Translation: Hello, Pronunciation: [merhaba], Example Sentence: Merhaba, nasılsın? " +
			"It must be json format",
	},
	{
		Code: "en",
		Name: "English",
		Prompt: "I want to learn English. Send me a random word in English and its translation in Turkish. " +
			"Also send me the pronunciation of the word in English. " +
			"Use the following format: Word: English word, Translation: Turkish translation, " +
			"Pronunciation: Pronunciation of the word in English. Example Sentence: An example sentence in English. " +
			"Example: Word: Hello, Translation: Merhaba, Pronunciation: [merhaba], Example Sentence: Hello, how are you? " +
			"It must be json format",
	},
	{
		Code: "es",
		Name: "Spanish",
		Prompt: "I want to learn Spanish. Send me a random word in Spanish and its translation in English. " +
			"Also send me the pronunciation of the word in Spanish. " +
			"Use the following format: Word: Spanish word, Translation: English translation, " +
			"Pronunciation: Pronunciation of the word in Spanish. Example Sentence: An example sentence in Spanish. " +
			"Example: Word: Hola, Translation: Hello, Pronunciation: [hola], Example Sentence: Hola, ¿cómo estás? " +
			"It must be json format",
	},
	{
		Code: "fr",
		Name: "French",
		Prompt: "I want to learn French. Send me a random word in French and its translation in English. " +
			"Also send me the pronunciation of the word in French. " +
			"Use the following format: Word: French word, Translation: English translation, " +
			"Pronunciation: Pronunciation of the word in French. Example Sentence: An example sentence in French. " +
			"Example: Word: Bonjour, Translation: Hello, Pronunciation: [bonjour], Example Sentence: Bonjour, comment ça va? " +
			"It must be json format",
	},
	{
		Code: "de",
		Name: "German",
		Prompt: "I want to learn German. Send me a random word in German and its translation in English. " +
			"Also send me the pronunciation of the word in German. " +
			"Use the following format: Word: German word, Translation: English translation, " +
			"Pronunciation: Pronunciation of the word in German. Example Sentence: An example sentence in German. " +
			"Example: Word: Hallo, Translation: Hello, Pronunciation: [hallo], Example Sentence: Hallo, wie geht es dir? " +
			"It must be json format",
	},
	{
		Code: "it",
		Name: "Italian",
		Prompt: "I want to learn Italian. Send me a random word in Italian and its translation in English. " +
			"Also send me the pronunciation of the word in Italian. " +
			"Use the following format: Word: Italian word, Translation: English translation, " +
			"Pronunciation: Pronunciation of the word in Italian. Example Sentence: An example sentence in Italian. " +
			"Example: Word: Ciao, Translation: Hello, Pronunciation: [ciao], Example Sentence: Ciao, come stai? " +
			"It must be json format",
	},
}

// ByCode returns the language for a code
func ByCode(code string) (Language, error) {
	for _, l := range Supported {
		if l.Code == code {
			return l, nil
		}
	}
	return Language{}, ErrUnknownLanguage
}

// DisplayName returns the human-readable name for a code, falling back to the
// raw code for languages outside the table.
func DisplayName(code string) string {
	if l, err := ByCode(code); err == nil {
		return l.Name
	}
	return code
}
