package bot

import (
	"encoding/json"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ivanoskov/timework_bot/internal/charts"
	"github.com/ivanoskov/timework_bot/internal/logger"
	"github.com/ivanoskov/timework_bot/internal/service"
	"github.com/ivanoskov/timework_bot/internal/session"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	service  *service.TimeTracker
	charts   *charts.ChartGenerator
	sessions *session.Store
}

func NewBot(token string, service *service.TimeTracker) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:      api,
		service:  service,
		charts:   charts.NewChartGenerator(),
		sessions: session.NewStore(),
	}, nil
}

// Start запускает бота в режиме long polling. События одного пользователя
// обрабатываются строго по порядку прихода в выделенной горутине,
// разные пользователи — параллельно.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	var (
		g       errgroup.Group
		mu      sync.Mutex
		workers = make(map[int64]chan tgbotapi.Update)
	)

	for update := range updates {
		userID := updateUserID(update)
		if userID == 0 {
			continue
		}

		mu.Lock()
		ch, ok := workers[userID]
		if !ok {
			ch = make(chan tgbotapi.Update, 16)
			workers[userID] = ch
			g.Go(func() error {
				for upd := range ch {
					if err := b.handleUpdate(upd); err != nil {
						logger.Log.Error("error handling update",
							zap.Int64("user_id", userID), zap.Error(err))
					}
				}
				return nil
			})
		}
		mu.Unlock()

		ch <- update
	}

	mu.Lock()
	for _, ch := range workers {
		close(ch)
	}
	mu.Unlock()

	return g.Wait()
}

// HandleWebhook - точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

// updateUserID достаёт идентификатор пользователя из события.
func updateUserID(update tgbotapi.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		return update.CallbackQuery.From.ID
	}
	return 0
}
