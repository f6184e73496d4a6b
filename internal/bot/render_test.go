package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ivanoskov/timework_bot/internal/model"
)

func TestFmtMoney(t *testing.T) {
	assert.Equal(t, "15.00 EUR", fmtMoney(15, "EUR"))
	assert.Equal(t, "0.00", fmtMoney(0, ""))
	assert.Equal(t, "-200.00 USD", fmtMoney(-200, "USD"))
}

func TestRenderProfileUnregistered(t *testing.T) {
	text := renderProfile(&model.User{UserID: 1})

	assert.Contains(t, text, "Валюта: —")
	assert.Contains(t, text, "Ставка: — /ч")
	assert.Contains(t, text, "Всего отработано: 0.00 ч")
	assert.Contains(t, text, "Текущая смена: Не начат")
}

func TestRenderProfileRegistered(t *testing.T) {
	rate := 12.5
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	user := &model.User{
		UserID:       1,
		Currency:     "EUR",
		Rate:         &rate,
		TotalHours:   1.5,
		TotalEarned:  18.75,
		Skips:        2,
		DaysOff:      1,
		AdvanceTotal: 100,
		ShiftStart:   &start,
	}

	text := renderProfile(user)

	assert.Contains(t, text, "Валюта: EUR")
	assert.Contains(t, text, "Ставка: 12.5 EUR/ч")
	assert.Contains(t, text, "Всего отработано: 1.50 ч")
	assert.Contains(t, text, "Заработано: 18.75 EUR")
	assert.Contains(t, text, "Взято авансом: 100.00 EUR")
	assert.Contains(t, text, "Пропусков: 2")
	assert.Contains(t, text, "Выходных: 1")
	assert.Contains(t, text, "с 2025-03-10 09:00:00 UTC")
}

// Клавиатура выбора валюты должна предлагать ровно поддерживаемый набор.
func TestCurrencyKeyboardMatchesSupported(t *testing.T) {
	b := &Bot{}
	keyboard := b.getCurrencyKeyboard()

	var codes []string
	for _, row := range keyboard.InlineKeyboard {
		assert.LessOrEqual(t, len(row), 3)
		for _, button := range row {
			codes = append(codes, strings.TrimPrefix(*button.CallbackData, "cur:"))
		}
	}
	assert.Equal(t, model.SupportedCurrencies, codes)

	for _, code := range codes {
		assert.True(t, model.IsSupportedCurrency(code))
	}
}

func TestProfileKeyboardActions(t *testing.T) {
	b := &Bot{}
	keyboard := b.getProfileKeyboard()

	var actions []string
	for _, row := range keyboard.InlineKeyboard {
		for _, button := range row {
			actions = append(actions, *button.CallbackData)
		}
	}

	assert.Equal(t, []string{
		"act:start", "act:end",
		"act:stats", "act:advance",
		"act:skip", "act:dayoff",
		"act:report",
		"act:confirm_reset",
	}, actions)
}
