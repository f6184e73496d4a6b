package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var currencyButtons = []struct {
	Label string
	Code  string
}{
	{"🇺🇸 USD", "USD"},
	{"🇪🇺 EUR", "EUR"},
	{"🇰🇿 KZT", "KZT"},
	{"🇺🇦 UAH", "UAH"},
	{"🇨🇿 CZK", "CZK"},
	{"🇵🇱 PLN", "PLN"},
}

func (b *Bot) getCurrencyKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, c := range currencyButtons {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(c.Label, "cur:"+c.Code))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) getProfileKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟢 Начало рабочего дня", "act:start"),
			tgbotapi.NewInlineKeyboardButtonData("🔴 Окончание рабочего дня", "act:end"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Общий результат", "act:stats"),
			tgbotapi.NewInlineKeyboardButtonData("💸 Взять аванс", "act:advance"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏸ Пропуск", "act:skip"),
			tgbotapi.NewInlineKeyboardButtonData("🌴 Выходной", "act:dayoff"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 График за неделю", "act:report"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧹 Стереть весь результат", "act:confirm_reset"),
		),
	)
}

func (b *Bot) getConfirmResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, стереть", "act:reset_yes"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Нет", "act:reset_no"),
		),
	)
}
