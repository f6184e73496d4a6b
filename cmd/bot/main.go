package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/ivanoskov/timework_bot/internal/bot"
	"github.com/ivanoskov/timework_bot/internal/config"
	"github.com/ivanoskov/timework_bot/internal/logger"
	"github.com/ivanoskov/timework_bot/internal/repository"
	"github.com/ivanoskov/timework_bot/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer logger.Log.Sync()

	repo, err := newRepository(cfg)
	if err != nil {
		logger.Log.Fatal("failed to init storage", zap.Error(err))
	}
	defer repo.Close()

	tracker := service.NewTimeTracker(repo)

	b, err := bot.NewBot(cfg.TelegramToken, tracker)
	if err != nil {
		logger.Log.Fatal("failed to create bot", zap.Error(err))
	}

	logger.Log.Info("bot started")
	if err := b.Start(); err != nil {
		logger.Log.Fatal("bot stopped", zap.Error(err))
	}
}

// newRepository выбирает хранилище: Supabase при заданных ключах,
// иначе локальный файл SQLite.
func newRepository(cfg *config.Config) (repository.Repository, error) {
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		return repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	}
	return repository.NewSQLiteRepository(cfg.DBPath)
}
