package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ivanoskov/timework_bot/internal/logger"
	"github.com/ivanoskov/timework_bot/internal/model"
	"github.com/ivanoskov/timework_bot/internal/service"
)

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}
	if update.Message != nil && update.Message.From == nil {
		return nil
	}

	if update.Message != nil && update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(update.CallbackQuery)
	}

	if update.Message != nil {
		return b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		return b.handleStart(message)
	}
	return nil
}

// handleStart начинает регистрацию. Повторный /start перезапускает её:
// незавершённый ввод прошлого диалога забывается.
func (b *Bot) handleStart(message *tgbotapi.Message) error {
	if err := b.service.Register(context.Background(), message.From.ID); err != nil {
		b.sendErrorMessage(message.Chat.ID, "Ошибка при создании профиля")
		return err
	}

	b.sessions.Set(message.From.ID, model.StateAwaitingCurrency)

	msg := tgbotapi.NewMessage(message.Chat.ID, "Привет! 👋 В какой валюте будет ставка?")
	msg.ReplyMarkup = b.getCurrencyKeyboard()
	b.api.Send(msg)
	return nil
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	if strings.HasPrefix(callback.Data, "cur:") {
		return b.handleCurrencyChoice(callback, strings.TrimPrefix(callback.Data, "cur:"))
	}
	if strings.HasPrefix(callback.Data, "act:") {
		return b.handleAction(callback, strings.TrimPrefix(callback.Data, "act:"))
	}
	return nil
}

func (b *Bot) handleCurrencyChoice(callback *tgbotapi.CallbackQuery, code string) error {
	userID := callback.From.ID

	err := b.service.SetCurrency(context.Background(), userID, code)
	if errors.Is(err, service.ErrUnknownCurrency) {
		// Кода нет в списке: состояние диалога не меняется.
		b.answerAlert(callback, "Такая валюта не поддерживается.")
		return nil
	}
	if err != nil {
		b.answerAlert(callback, "Ошибка при сохранении валюты")
		return err
	}

	b.sessions.Set(userID, model.StateAwaitingRate)

	edit := tgbotapi.NewEditMessageText(callback.Message.Chat.ID, callback.Message.MessageID,
		fmt.Sprintf("Отлично! Валюта: %s. Теперь введи ставку в час (число).", code))
	b.api.Send(edit)
	b.answer(callback, "")
	return nil
}

func (b *Bot) handleAction(callback *tgbotapi.CallbackQuery, action string) error {
	ctx := context.Background()
	userID := callback.From.ID

	switch action {
	case "start":
		user, err := b.service.StartShift(ctx, userID, time.Now())
		if errors.Is(err, service.ErrShiftAlreadyOpen) {
			b.answerAlert(callback, "Смена уже запущена.")
			return nil
		}
		if err != nil {
			b.answerAlert(callback, "Ошибка при сохранении")
			return err
		}
		b.editProfile(callback, fmt.Sprintf("Смена начата в %s UTC\n\n",
			user.ShiftStart.Format("2006-01-02 15:04:05")), user)
		b.answer(callback, "✅ Начало рабочего дня записано")

	case "end":
		hours, earned, user, err := b.service.EndShift(ctx, userID, time.Now())
		if errors.Is(err, service.ErrNoOpenShift) {
			b.answerAlert(callback, "Смена не начата.")
			return nil
		}
		if err != nil {
			b.answerAlert(callback, "Ошибка при сохранении")
			return err
		}
		b.editProfile(callback, fmt.Sprintf("Смена завершена.\nОтработано: %.2f ч\nЗаработано: %s\n\n",
			hours, fmtMoney(earned, user.Currency)), user)
		b.answer(callback, "✅ Конец рабочего дня записан")

	case "stats":
		user, err := b.service.Profile(ctx, userID)
		if err != nil {
			b.answerAlert(callback, "Ошибка при получении профиля")
			return err
		}
		b.editProfile(callback, "", user)
		b.answer(callback, "")

	case "advance":
		b.sessions.Set(userID, model.StateAwaitingAdvance)
		edit := tgbotapi.NewEditMessageText(callback.Message.Chat.ID, callback.Message.MessageID,
			"💰 Введи сумму аванса (например: 1500):")
		b.api.Send(edit)
		b.answer(callback, "")

	case "skip":
		user, err := b.service.AddSkip(ctx, userID)
		if err != nil {
			b.answerAlert(callback, "Ошибка при сохранении")
			return err
		}
		b.editProfile(callback, "⏸ Пропуск добавлен.\n\n", user)
		b.answer(callback, "✅ Пропуск учтен")

	case "dayoff":
		user, err := b.service.AddDayOff(ctx, userID)
		if err != nil {
			b.answerAlert(callback, "Ошибка при сохранении")
			return err
		}
		b.editProfile(callback, "🌴 Выходной добавлен.\n\n", user)
		b.answer(callback, "✅ Выходной учтен")

	case "report":
		return b.handleWeeklyReport(callback)

	case "confirm_reset":
		edit := tgbotapi.NewEditMessageTextAndMarkup(callback.Message.Chat.ID, callback.Message.MessageID,
			"⚠️ Ты уверен, что хочешь полностью стереть все данные?\n\nЭто действие нельзя отменить!",
			b.getConfirmResetKeyboard())
		b.api.Send(edit)
		b.answer(callback, "")

	case "reset_yes":
		user, err := b.service.Reset(ctx, userID)
		if err != nil {
			b.answerAlert(callback, "Ошибка при сбросе")
			return err
		}
		b.editProfile(callback, "✅ Все данные успешно очищены.\n\n", user)
		b.answer(callback, "Данные сброшены")

	case "reset_no":
		user, err := b.service.Profile(ctx, userID)
		if err != nil {
			b.answerAlert(callback, "Ошибка при получении профиля")
			return err
		}
		b.editProfile(callback, "Отмена очистки.\n\n", user)
		b.answer(callback, "❌ Отменено")
	}

	return nil
}

func (b *Bot) handleWeeklyReport(callback *tgbotapi.CallbackQuery) error {
	ctx := context.Background()
	userID := callback.From.ID

	report, err := b.service.GetWeeklyReport(ctx, userID, time.Now())
	if err != nil {
		b.answerAlert(callback, "Ошибка при формировании отчета")
		return err
	}

	png, err := b.charts.GenerateWeeklyHoursChart(report)
	if err != nil {
		b.answerAlert(callback, "Ошибка при построении графика")
		return err
	}
	if png == nil {
		b.answerAlert(callback, "Пока нет завершённых смен за неделю.")
		return nil
	}

	user, err := b.service.Profile(ctx, userID)
	if err != nil {
		b.answerAlert(callback, "Ошибка при получении профиля")
		return err
	}

	photo := tgbotapi.NewPhoto(callback.Message.Chat.ID, tgbotapi.FileBytes{
		Name:  "week.png",
		Bytes: png,
	})
	photo.Caption = fmt.Sprintf("📈 За неделю: смен %d, отработано %.2f ч, заработано %s",
		report.Shifts, report.TotalHours, fmtMoney(report.TotalEarned, user.Currency))
	b.api.Send(photo)
	b.answer(callback, "")
	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) error {
	ctx := context.Background()
	userID := message.From.ID

	switch b.sessions.Get(userID) {
	case model.StateAwaitingRate:
		rate, err := service.ParseAmount(message.Text)
		if err != nil || rate < 0 {
			b.reply(message, "Пожалуйста, введи число, например 10.5")
			return nil
		}
		if err := b.service.SetRate(ctx, userID, rate); err != nil {
			b.sendErrorMessage(message.Chat.ID, "Ошибка при сохранении ставки")
			return err
		}
		b.sessions.Clear(userID)
		return b.sendProfile(ctx, message.Chat.ID, userID, "")

	case model.StateAwaitingAdvance:
		amount, err := service.ParseAmount(message.Text)
		if err != nil {
			b.reply(message, "Пожалуйста, введи число, например 500.0")
			return nil
		}
		user, err := b.service.AddAdvance(ctx, userID, amount)
		if err != nil {
			b.sendErrorMessage(message.Chat.ID, "Ошибка при сохранении аванса")
			return err
		}
		b.sessions.Clear(userID)

		msg := tgbotapi.NewMessage(message.Chat.ID,
			fmt.Sprintf("💸 Аванс %s добавлен!\n\n%s", fmtMoney(amount, user.Currency), renderProfile(user)))
		msg.ReplyMarkup = b.getProfileKeyboard()
		b.api.Send(msg)
		return nil

	case model.StateAwaitingCurrency:
		msg := tgbotapi.NewMessage(message.Chat.ID, "Выбери валюту кнопкой ниже 👇")
		msg.ReplyMarkup = b.getCurrencyKeyboard()
		b.api.Send(msg)
		return nil

	default:
		// Свободный текст вне диалога: просто показываем профиль с меню.
		return b.sendProfile(ctx, message.Chat.ID, userID, "")
	}
}

func (b *Bot) sendProfile(ctx context.Context, chatID, userID int64, header string) error {
	user, err := b.service.Profile(ctx, userID)
	if err != nil {
		b.sendErrorMessage(chatID, "Ошибка при получении профиля")
		return err
	}

	msg := tgbotapi.NewMessage(chatID, header+renderProfile(user))
	msg.ReplyMarkup = b.getProfileKeyboard()
	b.api.Send(msg)
	return nil
}

func (b *Bot) editProfile(callback *tgbotapi.CallbackQuery, header string, user *model.User) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(callback.Message.Chat.ID, callback.Message.MessageID,
		header+renderProfile(user), b.getProfileKeyboard())
	if _, err := b.api.Send(edit); err != nil {
		logger.Log.Warn("failed to edit message", zap.Error(err))
	}
}

func (b *Bot) answer(callback *tgbotapi.CallbackQuery, text string) {
	b.api.Request(tgbotapi.NewCallback(callback.ID, text))
}

func (b *Bot) answerAlert(callback *tgbotapi.CallbackQuery, text string) {
	b.api.Request(tgbotapi.NewCallbackWithAlert(callback.ID, text))
}

func (b *Bot) reply(message *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	b.api.Send(msg)
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.api.Send(msg)
}
