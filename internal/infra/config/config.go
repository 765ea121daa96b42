package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL     string
	TelegramToken   string // admin/ops bot
	AdminTelegramID int64
	LogLevel        string
	Environment     string

	CronSpecToastCheck string // polling cadence for the toast tick

	// Language-generation provider (OpenAI-compatible). Optional: when the
	// API key is empty the pipeline uses templated fallback text only.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	OpenAITimeout time.Duration

	// Voice-synthesis provider (ElevenLabs-compatible). Optional: when the
	// API key is empty toasts are created without narration attempts.
	SpeechAPIKey  string
	SpeechBaseURL string
	SpeechTimeout time.Duration

	// Object storage for audio assets. When the upload URL is empty, or an
	// upload fails, audio falls back to local disk under PublicAudioDir.
	StorageUploadURL string
	StorageAuthToken string
	PublicBaseURL    string
	PublicAudioDir   string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
	if adminIDStr == "" {
		return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is not set")
	}
	cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.CronSpecToastCheck = os.Getenv("CRON_SPEC_TOAST_CHECK")
	if cfg.CronSpecToastCheck == "" {
		cfg.CronSpecToastCheck = "*/15 * * * *" // Default: every 15 minutes
	}

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	if cfg.OpenAIBaseURL == "" {
		cfg.OpenAIBaseURL = "https://api.openai.com/v1"
	}
	cfg.OpenAIModel = os.Getenv("OPENAI_MODEL")
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}
	cfg.OpenAITimeout, err = durationFromEnv("OPENAI_TIMEOUT_SECONDS", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.SpeechAPIKey = os.Getenv("ELEVENLABS_API_KEY")
	cfg.SpeechBaseURL = os.Getenv("ELEVENLABS_BASE_URL")
	if cfg.SpeechBaseURL == "" {
		cfg.SpeechBaseURL = "https://api.elevenlabs.io"
	}
	cfg.SpeechTimeout, err = durationFromEnv("SPEECH_TIMEOUT_SECONDS", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.StorageUploadURL = os.Getenv("STORAGE_UPLOAD_URL")
	cfg.StorageAuthToken = os.Getenv("STORAGE_AUTH_TOKEN")
	cfg.PublicBaseURL = os.Getenv("PUBLIC_BASE_URL")
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:8080"
	}
	cfg.PublicAudioDir = os.Getenv("PUBLIC_AUDIO_DIR")
	if cfg.PublicAudioDir == "" {
		cfg.PublicAudioDir = "./public/audio"
	}

	return cfg, nil
}

func durationFromEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return time.Duration(secs) * time.Second, nil
}
