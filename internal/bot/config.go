package bot

import (
	"fmt"
	"os"
)

// Config holds the bot's environment-driven configuration
type Config struct {
	// Telegram bot token, required
	Token string
	// Generation API key, required for /word
	GeminiAPIKey string
	// Generation API endpoint, empty selects the default
	GeminiAPIURL string
	// Directory for the SQLite database and export files
	DataDir string
	// PostgreSQL connection string; empty selects SQLite under DataDir
	DatabaseURL string
}

// ConfigFromEnv reads the configuration from environment variables
func ConfigFromEnv() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	return &Config{
		Token:        token,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiAPIURL: os.Getenv("GEMINI_API_URL"),
		DataDir:      dataDir,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}, nil
}
