package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

type Config struct {
	// GeminiAPIKey is intentionally not required: when it is absent the
	// service still starts and answers every turn with the not-ready
	// message instead of refusing to boot.
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	IndexPath    string        `env:"INDEX_PATH" envDefault:"form_guide.db"`
	DocsDir      string        `env:"EXERCISE_DOCS_DIR" envDefault:"hareket_ansiklopedisi"`
	HTTPPort     string        `env:"HTTP_PORT" envDefault:"7860"`
	LLMTimeout   time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
	DefaultLang  string        `env:"DEFAULT_LANG" envDefault:"tr"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"INFO"`
}

var AppConfig Config

func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, relying on environment variables")
	}

	AppConfig = Config{}
	return env.Parse(&AppConfig)
}
