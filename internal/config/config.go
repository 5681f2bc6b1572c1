package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	// AI provider. "gemini" (default) or "groq".
	AIProvider   string
	GeminiAPIKey string
	GroqAPIKey   string

	DatabasePath string

	// Media library (image hosting). Optional: when MediaURL is empty,
	// extracted recipes keep their original remote image URLs.
	MediaURL      string
	MediaAdminKey string // id:secret

	// Telegram Config (optional for CLI, required for the bot)
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	provider := os.Getenv("AI_PROVIDER")
	if provider == "" {
		provider = "gemini"
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	groqAPIKey := os.Getenv("GROQ_API_KEY")

	switch provider {
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case "groq":
		if groqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unknown AI_PROVIDER %q: expected gemini or groq", provider)
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "data/recipeclip.db"
	}

	var allowedIDs []int64
	for _, part := range strings.Split(os.Getenv("TELEGRAM_ALLOW_USER_ID"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOW_USER_ID entry %q: %w", part, err)
		}
		allowedIDs = append(allowedIDs, id)
	}

	return &Config{
		AIProvider:             provider,
		GeminiAPIKey:           geminiAPIKey,
		GroqAPIKey:             groqAPIKey,
		DatabasePath:           databasePath,
		MediaURL:               os.Getenv("MEDIA_API_URL"),
		MediaAdminKey:          os.Getenv("MEDIA_ADMIN_KEY"),
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
	}, nil
}
