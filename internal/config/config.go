package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	DBPath        string
	SupabaseURL   string
	SupabaseKey   string
	LogLevel      string
}

// LoadConfig читает конфигурацию из окружения. Файл .env опционален:
// переменные окружения процесса имеют приоритет.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DBPath:        os.Getenv("DB_PATH"),
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}

	if cfg.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_TOKEN is not set")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "workbot.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}
